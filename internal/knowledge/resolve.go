package knowledge

import (
	"strings"

	"github.com/jonathan/directionwise/internal/types"
)

// careerFieldOverrides places catalog careers whose free-text field does not
// name a knowledge field directly.
var careerFieldOverrides = map[string]string{
	"ux designer":          "technology",
	"graphic designer":     "creative_arts",
	"marketing specialist": "business",
	"financial analyst":    "business",
	"ui/ux designer":       "creative_arts",
}

// fieldAliases maps catalog field labels onto knowledge field ids.
var fieldAliases = map[string]string{
	"design":         "creative_arts",
	"marketing":      "business",
	"finance":        "business",
	"science":        "science_research",
	"research":       "science_research",
	"arts":           "creative_arts",
	"creative":       "creative_arts",
	"management":     "business",
	"administration": "business",
}

// ResolveCareerField places a persisted career (name plus free-text field
// label) onto a knowledge field. Career overrides win, then an exact id
// match, then a label alias; anything else lands in DefaultField.
func (b *Base) ResolveCareerField(careerName, fieldLabel string) *types.KnowledgeField {
	if id, ok := careerFieldOverrides[strings.ToLower(strings.TrimSpace(careerName))]; ok {
		if f, ok := b.Field(id); ok {
			return f
		}
	}

	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(fieldLabel)), " ", "_")
	if f, ok := b.Field(key); ok {
		return f
	}
	if id, ok := fieldAliases[key]; ok {
		if f, ok := b.Field(id); ok {
			return f
		}
	}

	if f, ok := b.Field(DefaultField); ok {
		return f
	}
	return &b.fields[0]
}

// FindCareer searches every field for a career record by name, returning the
// first match in declaration order.
func (b *Base) FindCareer(name string) (types.CareerRecord, string, bool) {
	for _, f := range b.fields {
		if c, ok := f.Career(name); ok {
			return c, f.ID, true
		}
	}
	return types.CareerRecord{}, "", false
}
