// Package extract pulls structured entities out of memory content using
// regex pattern matching.
package extract

import (
	"regexp"

	"github.com/rcliao/aimemo/internal/model"
)

// Extractor produces entities from raw text. Implementations must be
// stateless and total: any string input yields a (possibly empty) entity
// slice, never an error.
type Extractor interface {
	Extract(text string) []model.Entity
}

// RegexConfidence is assigned to every regex-derived entity. It is a fixed
// constant, not a measured value.
const RegexConfidence = 0.8

// Entity type names emitted by RegexExtractor.
const (
	TypeEmail = "email"
	TypeDate  = "date"
	TypeName  = "name"
)

type pattern struct {
	typ string
	re  *regexp.Regexp
}

// RegexExtractor matches a fixed set of patterns: email addresses, ISO
// dates (YYYY-MM-DD), and a two-token capitalized proper-name heuristic.
// The zero value is ready to use; it holds no mutable state and is safe
// for concurrent use.
type RegexExtractor struct{}

var patterns = []pattern{
	{TypeEmail, regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)},
	{TypeDate, regexp.MustCompile(`\d{4}-\d{2}-\d{2}`)},
	{TypeName, regexp.MustCompile(`[A-Z][a-z]+ [A-Z][a-z]+`)},
}

// NewRegexExtractor returns a RegexExtractor.
func NewRegexExtractor() *RegexExtractor {
	return &RegexExtractor{}
}

// Extract returns every non-overlapping match of each pattern kind, in
// pattern order (email, date, name), each with confidence 0.8 and the
// character span in the entity metadata. Capitalized two-token spans at the
// start of the text or right after a sentence-ending period are not names;
// they are suppressed so sentence starts are not misread as people.
func (e *RegexExtractor) Extract(text string) []model.Entity {
	var entities []model.Entity

	for _, p := range patterns {
		for _, span := range p.re.FindAllStringIndex(text, -1) {
			if p.typ == TypeName && sentenceStart(text, span[0]) {
				continue
			}
			match := text[span[0]:span[1]]
			entities = append(entities, model.Entity{
				Name:       match,
				Type:       p.typ,
				Value:      match,
				Confidence: RegexConfidence,
				Metadata:   map[string]any{"span": []int{span[0], span[1]}},
			})
		}
	}

	return entities
}

// sentenceStart reports whether a match starting at pos sits at the
// beginning of the text or immediately after a period and whitespace.
// Go's regexp has no lookbehind, so this filter runs after matching.
func sentenceStart(text string, pos int) bool {
	if pos == 0 {
		return true
	}
	if pos >= 2 && text[pos-2] == '.' && isSpace(text[pos-1]) {
		return true
	}
	return false
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
