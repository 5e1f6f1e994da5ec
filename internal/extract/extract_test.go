package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMixedText(t *testing.T) {
	e := NewRegexExtractor()

	entities := e.Extract("Meeting with John Doe on 2023-10-25 at test@example.com")
	require.GreaterOrEqual(t, len(entities), 3)

	byType := map[string][]string{}
	for _, ent := range entities {
		byType[ent.Type] = append(byType[ent.Type], ent.Value)
	}
	assert.Contains(t, byType[TypeEmail], "test@example.com")
	assert.Contains(t, byType[TypeDate], "2023-10-25")
	assert.Contains(t, byType[TypeName], "John Doe")
}

func TestExtractConfidenceAndSpan(t *testing.T) {
	e := NewRegexExtractor()

	entities := e.Extract("Contact alice@corp.io today")
	require.Len(t, entities, 1)
	ent := entities[0]
	assert.Equal(t, TypeEmail, ent.Type)
	assert.Equal(t, ent.Name, ent.Value)
	assert.Equal(t, RegexConfidence, ent.Confidence)

	span, ok := ent.Metadata["span"].([]int)
	require.True(t, ok)
	assert.Equal(t, "alice@corp.io", "Contact alice@corp.io today"[span[0]:span[1]])
}

func TestExtractNameSuppression(t *testing.T) {
	e := NewRegexExtractor()

	// A capitalized pair at the very start of the text is a sentence
	// start, not a name.
	assert.Empty(t, e.Extract("Hello World"))

	// Same for a pair right after a sentence-ending period.
	entities := e.Extract("It rained. Next Day we left")
	for _, ent := range entities {
		assert.NotEqual(t, TypeName, ent.Type, "matched %q", ent.Value)
	}

	// Mid-sentence names still match.
	entities = e.Extract("Lunch with Jane Smith tomorrow")
	require.Len(t, entities, 1)
	assert.Equal(t, TypeName, entities[0].Type)
	assert.Equal(t, "Jane Smith", entities[0].Value)
}

func TestExtractDeterministic(t *testing.T) {
	e := NewRegexExtractor()
	text := "Bob Jones emailed bob@x.io on 2024-01-01 and 2024-02-02"

	first := e.Extract(text)
	second := e.Extract(text)
	assert.Equal(t, first, second)
}

func TestExtractMultipleMatchesPerKind(t *testing.T) {
	e := NewRegexExtractor()

	entities := e.Extract("from 2023-01-01 to 2023-12-31")
	require.Len(t, entities, 2)
	assert.Equal(t, "2023-01-01", entities[0].Value)
	assert.Equal(t, "2023-12-31", entities[1].Value)
}

func TestExtractNoEntities(t *testing.T) {
	e := NewRegexExtractor()

	assert.Empty(t, e.Extract(""))
	assert.Empty(t, e.Extract("nothing structured here"))
}
