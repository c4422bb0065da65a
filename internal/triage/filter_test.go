package triage

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inquirydesk/backend/internal/model"
)

func TestMatches_Query(t *testing.T) {
	kim := &model.Submission{Name: "Kim", Email: strptr("A@X.com"), Phone: strptr("010-1111-2222"), Status: model.StatusNew}
	anon := &model.Submission{Name: "Anonymous", Status: model.StatusNew}

	tests := []struct {
		name  string
		sub   *model.Submission
		query string
		want  bool
	}{
		{"empty query matches", kim, "", true},
		{"uppercase name query", kim, "KIM", true},
		{"name substring", kim, "im", true},
		{"email case-insensitive", kim, "a@x", true},
		{"phone substring", kim, "1111", true},
		{"phone prefix", kim, "010-11", true},
		{"no match", kim, "park", false},
		{"absent email and phone", anon, "010", false},
		{"absent email, name hit", anon, "anon", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.sub, tt.query, model.FilterAll))
		})
	}
}

// TestMatches_PhoneIsCaseSensitive pins the phone comparison to the raw text.
func TestMatches_PhoneIsCaseSensitive(t *testing.T) {
	sub := &model.Submission{Name: "Kim", Phone: strptr("ext-12"), Status: model.StatusNew}
	assert.True(t, Matches(sub, "ext", model.FilterAll))
	assert.False(t, Matches(sub, "EXT", model.FilterAll))
}

func TestMatches_StatusAndQueryCombine(t *testing.T) {
	sub := &model.Submission{Name: "Kim", Status: model.StatusInProgress}
	assert.True(t, Matches(sub, "kim", model.FilterFor(model.StatusInProgress)))
	assert.False(t, Matches(sub, "kim", model.FilterFor(model.StatusNew)))
	assert.False(t, Matches(sub, "lee", model.FilterFor(model.StatusInProgress)))
}

func TestFilter_PreservesOrderAndNeverNil(t *testing.T) {
	rows := scenarioRows()
	rows = append(rows, &model.Submission{ID: "kimberly", Name: "Kimberly", Status: model.StatusNew})

	got := Filter(rows, "kim", model.FilterAll)
	assert.Equal(t, []string{"kim", "kimberly"}, ids(got))

	none := Filter(rows, "zzz", model.FilterAll)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCountStatuses(t *testing.T) {
	rows := scenarioRows()
	rows = append(rows, &model.Submission{ID: "x", Status: model.StatusInProgress})
	assert.Equal(t, model.StatusCounts{Total: 3, New: 1, InProgress: 1, Completed: 1}, CountStatuses(rows))
	assert.Equal(t, model.StatusCounts{}, CountStatuses(nil))
}
