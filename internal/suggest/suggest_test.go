package suggest_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forik/backend/internal/storage"
	"forik/backend/internal/suggest"
)

func seeded(t *testing.T) *suggest.Service {
	svc := suggest.NewService(storage.NewMemStore())
	for value, count := range map[string]int{
		"Bad_Guy":    3,
		"Bad_Actor":  3,
		"Worse_Guy":  5,
		"Mild_Guy":   1,
		"Other_One":  2,
		"Background": 1,
	} {
		for i := 0; i < count; i++ {
			require.NoError(t, svc.Bump(suggest.KindNickname, value))
		}
	}
	return svc
}

func values(s []suggest.Suggestion) []string {
	out := make([]string, len(s))
	for i, item := range s {
		out[i] = item.Value
	}
	return out
}

func TestSuggestRankedByCountThenName(t *testing.T) {
	svc := seeded(t)

	out, err := svc.Suggest(suggest.KindNickname, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Worse_Guy", "Bad_Actor", "Bad_Guy", "Other_One", "Background"}, values(out))
	assert.Equal(t, 5, out[0].Count)
}

func TestSuggestLimitsToFive(t *testing.T) {
	svc := seeded(t)

	out, err := svc.Suggest(suggest.KindNickname, "")
	require.NoError(t, err)
	assert.Len(t, out, 5)
}

func TestSuggestSubstringFilterIsCaseInsensitive(t *testing.T) {
	svc := seeded(t)

	out, err := svc.Suggest(suggest.KindNickname, "guy")
	require.NoError(t, err)
	assert.Equal(t, []string{"Worse_Guy", "Bad_Guy", "Mild_Guy"}, values(out))
}

func TestBumpIgnoresBlankValues(t *testing.T) {
	svc := suggest.NewService(storage.NewMemStore())
	require.NoError(t, svc.Bump(suggest.KindViolation, "   "))

	out, err := svc.Suggest(suggest.KindViolation, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestKindsAreIndependent(t *testing.T) {
	svc := suggest.NewService(storage.NewMemStore())
	require.NoError(t, svc.Bump(suggest.KindNickname, "Bad_Guy"))
	require.NoError(t, svc.Bump(suggest.KindViolation, "DM"))

	out, err := svc.Suggest(suggest.KindViolation, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"DM"}, values(out))
}

func TestResetDropsCounters(t *testing.T) {
	svc := seeded(t)
	require.NoError(t, svc.Reset(suggest.KindNickname))

	out, err := svc.Suggest(suggest.KindNickname, "")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUnknownKindRejected(t *testing.T) {
	svc := suggest.NewService(storage.NewMemStore())
	assert.Error(t, svc.Bump("server", "1"))
	_, err := svc.Suggest("server", "")
	assert.Error(t, err)
}
