// Package template renders complaint records through placeholder-bearing
// BBCode templates and resolves which saved template applies to a record.
package template

import (
	"strings"

	"forik/backend/internal/models"
)

// DateLayout is how {violationDate} is rendered in generated output.
const DateLayout = "02.01.2006 15:04"

// DefaultText is the built-in fallback template, used when the resolved
// template name has no saved text.
const DefaultText = `[CENTER][FONT=Book Antiqua][SIZE=6]
[IMG]https://i.imgur.com/fCg0qW9.png[/IMG]

[IMG]https://i.imgur.com/gYURVeT.png[/IMG]

Жалобщик: {yourNickname}
Нарушитель: {violatorNickname}
Суть жалобы: {violation}
Дата нарушения: {violationDate}
Организация нарушителя: {affiliationName}
Доказательства: {evidence}

[IMG]https://i.imgur.com/gYURVeT.png[/IMG]
[/SIZE][/FONT][/CENTER]`

// DefaultMessageText is the built-in Telegram message template. Newlines are
// stored escaped and decoded at render time.
const DefaultMessageText = `🚨 Новая жалоба\n\n👤 Жалобщик: {yourNickname}\n🎯 Нарушитель: {violatorNickname}\n⚠️ Нарушение: {violation}\n📅 Дата: {violationDate}\n🏢 Организация: {affiliationName}\n📸 Доказательства: {evidence}`

func replacements(c models.Complaint) [][2]string {
	date := ""
	if !c.ViolationDate.IsZero() {
		date = c.ViolationDate.Format(DateLayout)
	}
	return [][2]string{
		{"{yourNickname}", c.YourNickname},
		{"{violatorNickname}", c.ViolatorNickname},
		{"{violation}", c.Violation},
		{"{violationDate}", date},
		{"{affiliationName}", c.AffiliationName},
		{"{evidence}", c.Evidence},
	}
}

// Render substitutes every occurrence of each recognized placeholder with the
// matching record field. Absent fields become empty strings; unrecognized
// tokens are left untouched.
func Render(tpl string, c models.Complaint) string {
	out := tpl
	for _, r := range replacements(c) {
		out = strings.ReplaceAll(out, r[0], r[1])
	}
	return out
}

// RenderMessage renders a delivery message template: literal "\n" sequences
// are decoded to newlines before placeholder substitution.
func RenderMessage(tpl string, c models.Complaint) string {
	return Render(strings.ReplaceAll(tpl, `\n`, "\n"), c)
}

// Match is one dimension of a rule: either an exact value or the wildcard.
type Match struct {
	value string
	any   bool
}

// Exact matches only the given value.
func Exact(v string) Match { return Match{value: v} }

// Any matches every value.
func Any() Match { return Match{any: true} }

// MatchFrom builds a Match from a stored rule dimension, where
// models.RuleWildcard denotes Any.
func MatchFrom(v string) Match {
	if v == models.RuleWildcard {
		return Any()
	}
	return Exact(v)
}

// Matches reports whether v satisfies the match spec.
func (m Match) Matches(v string) bool {
	return m.any || m.value == v
}

// ResolveName walks rules in stored order and returns the first rule whose
// server and affiliation dimensions both match. Ties between equally generic
// rules are broken by stored order. Falls back to the default template name.
func ResolveName(rules []models.TemplateRule, server, affiliation string) string {
	for _, rule := range rules {
		if MatchFrom(rule.Server).Matches(server) && MatchFrom(rule.Affiliation).Matches(affiliation) {
			return rule.TemplateName
		}
	}
	return models.DefaultTemplateName
}
