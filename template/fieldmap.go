// Package template mediates between the visual template editor's
// section.field addresses and the flat couples table. The mapping is a static
// bijection; edits to mapped fields land in exactly one column and rendering
// walks the same table in reverse.
package template

import (
	"fmt"
	"sort"
)

type FieldRef struct {
	SectionId string
	FieldId   string
}

func (r FieldRef) String() string {
	return r.SectionId + "." + r.FieldId
}

// Kind drives value conversion when an edit crosses into the schema.
type Kind int

const (
	KindText Kind = iota
	KindDate
	KindImage
)

type Entry struct {
	Column string
	Kind   Kind
}

type FieldMap struct {
	forward map[FieldRef]Entry
	reverse map[string]FieldRef
}

// NewFieldMap derives the reverse table by inverting forward. A duplicate
// column breaks round-trip correctness, so construction fails instead of
// silently dropping the colliding entry.
func NewFieldMap(forward map[FieldRef]Entry) (*FieldMap, error) {
	reverse := make(map[string]FieldRef, len(forward))
	for ref, entry := range forward {
		if prev, ok := reverse[entry.Column]; ok {
			return nil, fmt.Errorf("field map: column %q mapped by both %s and %s", entry.Column, prev, ref)
		}
		reverse[entry.Column] = ref
	}
	return &FieldMap{forward: forward, reverse: reverse}, nil
}

func (m *FieldMap) ToDBField(sectionId, fieldId string) (Entry, bool) {
	entry, ok := m.forward[FieldRef{sectionId, fieldId}]
	return entry, ok
}

func (m *FieldMap) ToTemplateField(column string) (FieldRef, bool) {
	ref, ok := m.reverse[column]
	return ref, ok
}

func (m *FieldMap) IsMappable(sectionId, fieldId string) bool {
	_, ok := m.forward[FieldRef{sectionId, fieldId}]
	return ok
}

func (m *FieldMap) FieldsForSection(sectionId string) []string {
	var fields []string
	for ref := range m.forward {
		if ref.SectionId == sectionId {
			fields = append(fields, ref.FieldId)
		}
	}
	sort.Strings(fields)
	return fields
}

func (m *FieldMap) Columns() []string {
	cols := make([]string, 0, len(m.reverse))
	for col := range m.reverse {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// SiteFieldMap is the mapping for the wedding site template.
func SiteFieldMap() *FieldMap {
	m, err := NewFieldMap(map[FieldRef]Entry{
		{"hero", "groomName"}:          {Column: "groom_name", Kind: KindText},
		{"hero", "brideName"}:          {Column: "bride_name", Kind: KindText},
		{"hero", "weddingDate"}:        {Column: "wedding_date", Kind: KindDate},
		{"hero", "coverImage"}:         {Column: "cover_image_url", Kind: KindImage},
		{"story", "content"}:           {Column: "story", Kind: KindText},
		{"story", "image"}:             {Column: "story_image_url", Kind: KindImage},
		{"event", "venueName"}:         {Column: "venue_name", Kind: KindText},
		{"event", "venueAddress"}:      {Column: "venue_address", Kind: KindText},
		{"event", "city"}:              {Column: "city", Kind: KindText},
		{"event", "mapUrl"}:            {Column: "map_url", Kind: KindText},
		{"invitation", "message"}:      {Column: "invitation_message", Kind: KindText},
		{"rsvp", "deadline"}:           {Column: "rsvp_deadline", Kind: KindDate},
	})
	if err != nil {
		// The table above is static; an inversion failure is a programming
		// error and must surface at bootstrap.
		panic(err)
	}
	return m
}
