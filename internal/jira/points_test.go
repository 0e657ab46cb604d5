package jira

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoryPoints(t *testing.T) {
	t.Run("reads the first populated custom field", func(t *testing.T) {
		issue := makeIssue("PROJ-1")
		issue.Fields.Points10026 = floatPtr(5)
		issue.Fields.Points10036 = floatPtr(8)

		assert.Equal(t, 5.0, StoryPoints(issue))
	})

	t.Run("field order is 10016 first", func(t *testing.T) {
		issue := makeIssue("PROJ-1", withPoints(3))
		issue.Fields.Points10026 = floatPtr(5)

		assert.Equal(t, 3.0, StoryPoints(issue))
	})

	t.Run("zero estimate wins over later fields", func(t *testing.T) {
		issue := makeIssue("PROJ-1", withPoints(0))
		issue.Fields.Points10036 = floatPtr(13)

		assert.Equal(t, 0.0, StoryPoints(issue))
	})

	t.Run("no estimate reads as zero", func(t *testing.T) {
		assert.Equal(t, 0.0, StoryPoints(makeIssue("PROJ-1")))
	})
}

func TestNormalizeType(t *testing.T) {
	cases := map[string]string{
		"Story":          TypeStory,
		"Bug":            TypeBug,
		"Task":           TypeTask,
		"Sub-task":       TypeTask,
		"Technical Debt": TypeTechDebt,
		"Support":        TypeSupport,
		"Epic":           TypeTask,
		"":               TypeTask,
	}
	for raw, want := range cases {
		assert.Equal(t, want, NormalizeType(raw), "type %q", raw)
	}
}

func TestTypeColor(t *testing.T) {
	assert.Equal(t, "#3b82f6", TypeColor(TypeStory))
	assert.Equal(t, "#ef4444", TypeColor(TypeBug))
	assert.Equal(t, "#f59e0b", TypeColor(TypeTechDebt))
	assert.Equal(t, "#6b7280", TypeColor("Mystery"))
}
