package template_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"forik/backend/internal/models"
	"forik/backend/internal/storage"
	"forik/backend/internal/template"
)

func sampleComplaint() models.Complaint {
	return models.Complaint{
		YourNickname:     "Ivan_Petrov",
		ViolatorNickname: "Bad_Guy",
		Violation:        "DM на спавне",
		ViolationDate:    time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC),
		Affiliation:      models.AffiliationGang,
		AffiliationName:  "Grove Street",
		Evidence:         "https://youtu.be/abc123",
	}
}

func TestRenderSubstitutesAllPlaceholders(t *testing.T) {
	tpl := "{yourNickname} vs {violatorNickname}: {violation} ({violationDate}) [{affiliationName}] {evidence}"
	out := template.Render(tpl, sampleComplaint())

	assert.Equal(t, "Ivan_Petrov vs Bad_Guy: DM на спавне (14.03.2025 18:30) [Grove Street] https://youtu.be/abc123", out)
}

func TestRenderRepeatedAndUnknownPlaceholders(t *testing.T) {
	out := template.Render("{violatorNickname} {violatorNickname} {unknown}", sampleComplaint())
	assert.Equal(t, "Bad_Guy Bad_Guy {unknown}", out)
}

func TestRenderAbsentFieldsBecomeEmpty(t *testing.T) {
	out := template.Render("[{affiliationName}] on {violationDate}", models.Complaint{})
	assert.Equal(t, "[] on ", out)
}

func TestRenderMessageDecodesEscapedNewlines(t *testing.T) {
	out := template.RenderMessage(`line1\nline2 {violatorNickname}`, sampleComplaint())
	assert.Equal(t, "line1\nline2 Bad_Guy", out)
}

func TestMatchSpecs(t *testing.T) {
	assert.True(t, template.Exact("1").Matches("1"))
	assert.False(t, template.Exact("1").Matches("12"))
	assert.True(t, template.Any().Matches("whatever"))
	assert.True(t, template.MatchFrom(models.RuleWildcard).Matches("12"))
	assert.False(t, template.MatchFrom("org").Matches("gang"))
}

func TestResolveNameFirstMatchWins(t *testing.T) {
	rules := []models.TemplateRule{
		{Server: "1", Affiliation: "org", TemplateName: "server1-org"},
		{Server: "1", Affiliation: models.RuleWildcard, TemplateName: "server1-any"},
		{Server: models.RuleWildcard, Affiliation: models.RuleWildcard, TemplateName: "catchall"},
	}

	assert.Equal(t, "server1-org", template.ResolveName(rules, "1", "org"))
	assert.Equal(t, "server1-any", template.ResolveName(rules, "1", "gang"))
	assert.Equal(t, "catchall", template.ResolveName(rules, "12", "none"))
}

func TestResolveNameStoredOrderBreaksTies(t *testing.T) {
	rules := []models.TemplateRule{
		{Server: models.RuleWildcard, Affiliation: models.RuleWildcard, TemplateName: "first"},
		{Server: "1", Affiliation: "org", TemplateName: "specific"},
	}
	// the generic rule comes first, so it wins even over a more specific one
	assert.Equal(t, "first", template.ResolveName(rules, "1", "org"))
}

func TestResolveNameFallsBackToDefault(t *testing.T) {
	assert.Equal(t, models.DefaultTemplateName, template.ResolveName(nil, "1", "org"))
	rules := []models.TemplateRule{{Server: "7", Affiliation: "org", TemplateName: "x"}}
	assert.Equal(t, models.DefaultTemplateName, template.ResolveName(rules, "1", "gang"))
}

func TestServiceTextFallsBackToBuiltin(t *testing.T) {
	svc := template.NewService(storage.NewMemStore())

	text, err := svc.Text("nonexistent")
	assert.NoError(t, err)
	assert.Equal(t, template.DefaultText, text)
}

func TestServiceTextPrefersSavedDefaultOverBuiltin(t *testing.T) {
	svc := template.NewService(storage.NewMemStore())
	assert.NoError(t, svc.Save(models.DefaultTemplateName, "override {violation}"))

	text, err := svc.Text("nonexistent")
	assert.NoError(t, err)
	assert.Equal(t, "override {violation}", text)
}

func TestBuiltinTemplateLeavesNoTokens(t *testing.T) {
	out := template.Render(template.DefaultText, sampleComplaint())
	assert.NotContains(t, out, "{")
	assert.Contains(t, out, "Bad_Guy")
}

func TestServiceSaveAndResolveRoundTrip(t *testing.T) {
	svc := template.NewService(storage.NewMemStore())

	assert.NoError(t, svc.Save("strict", "Жалоба: {violation}"))
	assert.NoError(t, svc.AddRule(models.TemplateRule{Server: "1", Affiliation: models.RuleWildcard, TemplateName: "strict"}))

	name, err := svc.Resolve("1", "gang")
	assert.NoError(t, err)
	assert.Equal(t, "strict", name)

	c := sampleComplaint()
	c.Server = "1"
	out, err := svc.RenderFor(c)
	assert.NoError(t, err)
	assert.Equal(t, "Жалоба: DM на спавне", out)
}

func TestServiceDeleteRule(t *testing.T) {
	svc := template.NewService(storage.NewMemStore())
	assert.NoError(t, svc.AddRule(models.TemplateRule{Server: "1", Affiliation: "org", TemplateName: "a"}))
	assert.NoError(t, svc.AddRule(models.TemplateRule{Server: "2", Affiliation: "org", TemplateName: "b"}))

	assert.Error(t, svc.DeleteRule(5))
	assert.NoError(t, svc.DeleteRule(0))

	rules, err := svc.Rules()
	assert.NoError(t, err)
	assert.Len(t, rules, 1)
	assert.Equal(t, "b", rules[0].TemplateName)
}
