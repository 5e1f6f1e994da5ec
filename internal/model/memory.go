// Package model defines the core memory data types.
package model

import (
	"fmt"
	"time"
)

// Category is a label from the fixed memory taxonomy.
type Category string

// The six memory categories.
const (
	CategoryFact       Category = "fact"
	CategoryPreference Category = "preference"
	CategorySkill      Category = "skill"
	CategoryRule       Category = "rule"
	CategoryContext    Category = "context"
	CategoryUnknown    Category = "unknown"
)

// Categories lists all valid category values.
var Categories = []Category{
	CategoryFact,
	CategoryPreference,
	CategorySkill,
	CategoryRule,
	CategoryContext,
	CategoryUnknown,
}

// Valid reports whether c is one of the six taxonomy values.
func (c Category) Valid() bool {
	switch c {
	case CategoryFact, CategoryPreference, CategorySkill, CategoryRule, CategoryContext, CategoryUnknown:
		return true
	}
	return false
}

// ParseCategory converts a string into a Category, rejecting anything
// outside the taxonomy.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("invalid category %q (valid: %v)", s, Categories)
	}
	return c, nil
}

// EntitiesMetadataKey is the reserved metadata key holding extracted entities.
const EntitiesMetadataKey = "entities"

// Memory is the durable memory unit. Content and Timestamp are immutable
// once stored; memories are removed only by namespace-scoped clears.
type Memory struct {
	ID        string         `json:"id"`
	Content   string         `json:"content"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Tags      []string       `json:"tags,omitempty"`
	Namespace string         `json:"namespace"`
	Timestamp time.Time      `json:"timestamp"`
	Category  Category       `json:"category"`
}

// Entity is a structured fact extracted from a memory's content at write
// time. Entities live only inside Memory.Metadata under EntitiesMetadataKey;
// they are not separately addressable.
type Entity struct {
	Name       string         `json:"name"`
	Type       string         `json:"type"`
	Value      string         `json:"value"`
	Confidence float64        `json:"confidence"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}
