package template

import (
	"fmt"

	"forik/backend/internal/models"
	"forik/backend/internal/storage"
)

// Service persists saved templates and the rule list and renders records
// against whichever template the rules resolve.
type Service struct {
	store storage.Store
}

func NewService(s storage.Store) *Service {
	return &Service{store: s}
}

// All returns the saved templates as a name -> text map.
func (s *Service) All() (map[string]string, error) {
	templates := map[string]string{}
	if _, err := storage.GetJSON(s.store, storage.KeySavedTemplates, &templates); err != nil {
		return nil, err
	}
	return templates, nil
}

// Text returns the template text for name. When no text is saved under that
// name the saved default template applies, and failing that the built-in one.
func (s *Service) Text(name string) (string, error) {
	templates, err := s.All()
	if err != nil {
		return "", err
	}
	if text, ok := templates[name]; ok && text != "" {
		return text, nil
	}
	if text, ok := templates[models.DefaultTemplateName]; ok && text != "" {
		return text, nil
	}
	return DefaultText, nil
}

// Save stores template text under name.
func (s *Service) Save(name, text string) error {
	if name == "" {
		return fmt.Errorf("template: name is required")
	}
	templates, err := s.All()
	if err != nil {
		return err
	}
	templates[name] = text
	return storage.SetJSON(s.store, storage.KeySavedTemplates, templates)
}

// Delete removes a saved template. Deleting the default name only removes the
// saved override; rendering falls back to the built-in text.
func (s *Service) Delete(name string) error {
	templates, err := s.All()
	if err != nil {
		return err
	}
	delete(templates, name)
	return storage.SetJSON(s.store, storage.KeySavedTemplates, templates)
}

// Rules returns the stored rule list in evaluation order.
func (s *Service) Rules() ([]models.TemplateRule, error) {
	var rules []models.TemplateRule
	if _, err := storage.GetJSON(s.store, storage.KeyTemplateRules, &rules); err != nil {
		return nil, err
	}
	return rules, nil
}

// AddRule appends a rule to the end of the list.
func (s *Service) AddRule(rule models.TemplateRule) error {
	rules, err := s.Rules()
	if err != nil {
		return err
	}
	rules = append(rules, rule)
	return storage.SetJSON(s.store, storage.KeyTemplateRules, rules)
}

// DeleteRule removes the rule at index.
func (s *Service) DeleteRule(index int) error {
	rules, err := s.Rules()
	if err != nil {
		return err
	}
	if index < 0 || index >= len(rules) {
		return fmt.Errorf("template: rule index %d out of range", index)
	}
	rules = append(rules[:index], rules[index+1:]...)
	return storage.SetJSON(s.store, storage.KeyTemplateRules, rules)
}

// SetRules replaces the whole rule list, preserving the given order.
func (s *Service) SetRules(rules []models.TemplateRule) error {
	return storage.SetJSON(s.store, storage.KeyTemplateRules, rules)
}

// Resolve returns the template name the rule list selects for a server and
// affiliation combination.
func (s *Service) Resolve(server, affiliation string) (string, error) {
	rules, err := s.Rules()
	if err != nil {
		return "", err
	}
	return ResolveName(rules, server, affiliation), nil
}

// RenderFor resolves the template for the record and renders it.
func (s *Service) RenderFor(c models.Complaint) (string, error) {
	name, err := s.Resolve(c.Server, c.Affiliation)
	if err != nil {
		return "", err
	}
	text, err := s.Text(name)
	if err != nil {
		return "", err
	}
	return Render(text, c), nil
}
