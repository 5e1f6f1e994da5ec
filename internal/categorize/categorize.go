// Package categorize assigns a taxonomy label to memory content based on
// lexical cues.
package categorize

import (
	"strings"

	"github.com/rcliao/aimemo/internal/model"
)

// Categorizer assigns exactly one category to a text. Implementations must
// be stateless and total over any string input.
type Categorizer interface {
	Categorize(text string) model.Category
}

type keywordRule struct {
	category model.Category
	keywords []string
}

// keywordTable is checked in order; the first category with any matching
// phrase wins, so preference outranks skill, skill outranks rule, and so on.
var keywordTable = []keywordRule{
	{model.CategoryPreference, []string{"like", "love", "hate", "prefer", "enjoy", "want"}},
	{model.CategorySkill, []string{"can", "know", "able to", "expert", "proficient"}},
	{model.CategoryRule, []string{"always", "never", "must", "should", "rule"}},
	{model.CategoryFact, []string{"is a", "located", "born", "defined as", "is in"}},
}

// KeywordCategorizer classifies text by exact-phrase, case-insensitive,
// whole-word containment against a fixed keyword table. It is not tokenized
// NLP: a phrase matches only when surrounded by spaces in the padded,
// lower-cased text. No match returns CategoryContext.
type KeywordCategorizer struct{}

// NewKeywordCategorizer returns a KeywordCategorizer.
func NewKeywordCategorizer() *KeywordCategorizer {
	return &KeywordCategorizer{}
}

// Categorize returns the first matching category from the keyword table,
// or CategoryContext when no phrase matches.
func (c *KeywordCategorizer) Categorize(text string) model.Category {
	padded := " " + strings.ToLower(text) + " "

	for _, rule := range keywordTable {
		for _, kw := range rule.keywords {
			if strings.Contains(padded, " "+kw+" ") {
				return rule.category
			}
		}
	}

	return model.CategoryContext
}
