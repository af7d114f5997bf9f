// Package knowledge loads the career field knowledge base and the mentorship
// stories that ship with the service.
package knowledge

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	bundled "github.com/jonathan/directionwise/schemas"

	"github.com/jonathan/directionwise/internal/schemas"
	"github.com/jonathan/directionwise/internal/types"
)

//go:embed data/knowledge_base.json
var knowledgeBaseJSON []byte

//go:embed data/mentorship.json
var mentorshipJSON []byte

// DefaultField is used when a career cannot be placed in any other field.
const DefaultField = "technology"

// Base is the immutable, ordered set of career fields. It is safe for
// concurrent use; callers must not mutate returned slices.
type Base struct {
	version string
	fields  []types.KnowledgeField
	index   map[string]int
	stories map[string][]types.MentorshipStory
	samples []types.MentorshipStory
}

type baseDocument struct {
	Version string                 `json:"version"`
	Fields  []types.KnowledgeField `json:"fields"`
}

type mentorshipDocument struct {
	Stories []types.MentorshipStory `json:"stories"`
	Samples []types.MentorshipStory `json:"samples"`
}

// Load returns the knowledge base compiled into the binary.
func Load() (*Base, error) {
	return Parse(knowledgeBaseJSON, mentorshipJSON)
}

// MustLoad is Load for callers that treat a broken embedded document as a
// programming error.
func MustLoad() *Base {
	b, err := Load()
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFile reads an override knowledge base from disk. Mentorship stories
// still come from the embedded document.
func LoadFile(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base %s: %w", path, err)
	}
	return Parse(data, mentorshipJSON)
}

// Parse validates both documents against their schemas and builds a Base.
func Parse(kbDoc, mentorshipDoc []byte) (*Base, error) {
	if err := schemas.Validate(bundled.KnowledgeBase, kbDoc); err != nil {
		return nil, fmt.Errorf("invalid knowledge base: %w", err)
	}
	if err := schemas.Validate(bundled.Mentorship, mentorshipDoc); err != nil {
		return nil, fmt.Errorf("invalid mentorship stories: %w", err)
	}

	var doc baseDocument
	if err := decodeStrict(kbDoc, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge base: %w", err)
	}
	var ment mentorshipDocument
	if err := decodeStrict(mentorshipDoc, &ment); err != nil {
		return nil, fmt.Errorf("failed to decode mentorship stories: %w", err)
	}

	b := &Base{
		version: doc.Version,
		fields:  doc.Fields,
		index:   make(map[string]int, len(doc.Fields)),
		stories: make(map[string][]types.MentorshipStory),
		samples: ment.Samples,
	}
	for i, f := range doc.Fields {
		if _, dup := b.index[f.ID]; dup {
			return nil, fmt.Errorf("duplicate field id %q", f.ID)
		}
		if f.EmergingTechnologies == nil {
			b.fields[i].EmergingTechnologies = []string{}
		}
		b.index[f.ID] = i
	}
	for _, s := range ment.Stories {
		if _, ok := b.index[s.Field]; !ok {
			return nil, fmt.Errorf("mentorship story for %s references unknown field %q", s.Mentor, s.Field)
		}
		b.stories[s.Field] = append(b.stories[s.Field], s)
	}
	return b, nil
}

func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// Version is the knowledge base document version.
func (b *Base) Version() string {
	return b.version
}

// Fields returns every field in declaration order.
func (b *Base) Fields() []types.KnowledgeField {
	return b.fields
}

// FieldIDs returns field ids in declaration order.
func (b *Base) FieldIDs() []string {
	ids := make([]string, len(b.fields))
	for i, f := range b.fields {
		ids[i] = f.ID
	}
	return ids
}

// Field looks up a field by id.
func (b *Base) Field(id string) (*types.KnowledgeField, bool) {
	i, ok := b.index[id]
	if !ok {
		return nil, false
	}
	return &b.fields[i], true
}

// Position returns the declaration index of a field, or -1.
func (b *Base) Position(id string) int {
	if i, ok := b.index[id]; ok {
		return i
	}
	return -1
}
