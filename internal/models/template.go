package models

// DefaultTemplateName is the reserved name of the fallback template.
const DefaultTemplateName = "default"

// RuleWildcard matches any value in a template rule dimension.
const RuleWildcard = "any"

// TemplateRule maps a (server, affiliation) combination to a saved template
// name. Either dimension may hold RuleWildcard. Rules are evaluated in stored
// order, first match wins.
type TemplateRule struct {
	Server       string `json:"server"`
	Affiliation  string `json:"affiliation"`
	TemplateName string `json:"templateName"`
}
