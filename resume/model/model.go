package model

import "strings"

// Resume is the root aggregate. ID is assigned by the server on first save
// and stays empty for an unsaved draft.
type Resume struct {
	ID      string  `json:"id,omitempty"`
	Title   string  `json:"title"`
	Content Content `json:"content"`
}

// Content holds the editable body of a resume: flat contact fields plus the
// ordered section list. SectionOrder is the authoritative display order and
// must stay a permutation of the section IDs; Normalize repairs it.
type Content struct {
	Basics       Basics    `json:"basics"`
	Sections     []Section `json:"sections"`
	SectionOrder []string  `json:"sectionOrder"`
}

// Basics captures the flat contact/summary fields shown at the top of a resume.
type Basics struct {
	Name     string   `json:"name"`
	Label    string   `json:"label"`
	Email    string   `json:"email"`
	Phone    string   `json:"phone"`
	Summary  string   `json:"summary"`
	Location Location `json:"location"`
}

// Location is the structured address block inside Basics.
type Location struct {
	Address     string `json:"address"`
	City        string `json:"city"`
	CountryCode string `json:"countryCode"`
	PostalCode  string `json:"postalCode"`
}

// Section is a titled, typed group of items. Enabled defaults to true when
// nil; Content order is display order within the section.
type Section struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Title    string `json:"title"`
	Content  []Item `json:"content"`
	Enabled  *bool  `json:"enabled,omitempty"`
	IsCustom bool   `json:"isCustom,omitempty"`
}

// EnabledOrDefault reports whether the section is visible, treating an unset
// flag as visible.
func (s Section) EnabledOrDefault() bool {
	if s.Enabled == nil {
		return true
	}
	return *s.Enabled
}

// FindItem returns the index of the item with the given ID, or -1.
func (s Section) FindItem(itemID string) int {
	for i := range s.Content {
		if s.Content[i].ID() == itemID {
			return i
		}
	}
	return -1
}

// Item is one entry within a section. The field set is polymorphic over the
// owning section's type, so items are carried as a JSON object; the section
// registry defines the closed per-type key schema and ValidateSection
// enforces it. "id" and "enabled" are the shared base fields.
type Item map[string]any

// ID returns the item's identifier, or "" when unset.
func (it Item) ID() string {
	id, _ := it["id"].(string)
	return id
}

// SetID stores the item's identifier.
func (it Item) SetID(id string) {
	it["id"] = id
}

// EnabledOrDefault reports whether the item is visible, treating a missing or
// unset flag as visible.
func (it Item) EnabledOrDefault() bool {
	if v, ok := it["enabled"].(bool); ok {
		return v
	}
	return true
}

// HasKey reports whether the item carries the given key, even with an empty value.
func (it Item) HasKey(key string) bool {
	_, ok := it[key]
	return ok
}

// String returns the item's value under key as a string, or "" when absent
// or of another type.
func (it Item) String(key string) string {
	s, _ := it[key].(string)
	return s
}

// Strings returns the item's value under key as a string slice. JSON decoding
// yields []any, which is converted element-wise.
func (it Item) Strings(key string) []string {
	switch v := it[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, e := range v {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

// Clone deep-copies the item, including nested slices and objects.
func (it Item) Clone() Item {
	if it == nil {
		return nil
	}
	out := make(Item, len(it))
	for k, v := range it {
		out[k] = cloneValue(v)
	}
	return out
}

// Merge returns a copy of the item with the patch shallow-merged on top.
// Patch values replace existing keys wholesale; id cannot be overwritten.
func (it Item) Merge(patch map[string]any) Item {
	out := it.Clone()
	for k, v := range patch {
		if k == "id" {
			continue
		}
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = cloneValue(e)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = cloneValue(e)
		}
		return out
	default:
		return val
	}
}

// Clone deep-copies the resume so transforms never alias their input.
func (r Resume) Clone() Resume {
	out := r
	out.Content = r.Content.Clone()
	return out
}

// Clone deep-copies the content.
func (c Content) Clone() Content {
	out := c
	out.Sections = make([]Section, len(c.Sections))
	for i, sec := range c.Sections {
		out.Sections[i] = sec.Clone()
	}
	out.SectionOrder = make([]string, len(c.SectionOrder))
	copy(out.SectionOrder, c.SectionOrder)
	return out
}

// Clone deep-copies the section and its items.
func (s Section) Clone() Section {
	out := s
	if s.Enabled != nil {
		v := *s.Enabled
		out.Enabled = &v
	}
	out.Content = make([]Item, len(s.Content))
	for i, it := range s.Content {
		out.Content[i] = it.Clone()
	}
	return out
}

// FindSection returns the index of the section with the given ID, or -1.
func (c Content) FindSection(sectionID string) int {
	for i := range c.Sections {
		if c.Sections[i].ID == sectionID {
			return i
		}
	}
	return -1
}

// Normalize repairs the order/set invariant in place: order entries that no
// longer resolve to a section are dropped, duplicates are collapsed, and
// sections missing from the order are appended in section-list order. Empty
// section IDs are left to validation.
func (c *Content) Normalize() {
	known := make(map[string]bool, len(c.Sections))
	for _, sec := range c.Sections {
		known[sec.ID] = true
	}

	order := make([]string, 0, len(c.Sections))
	seen := make(map[string]bool, len(c.Sections))
	for _, id := range c.SectionOrder {
		if known[id] && !seen[id] {
			order = append(order, id)
			seen[id] = true
		}
	}
	for _, sec := range c.Sections {
		if !seen[sec.ID] {
			order = append(order, sec.ID)
			seen[sec.ID] = true
		}
	}
	c.SectionOrder = order
}

// Empty returns a fresh resume with defaulted content, ready for editing.
func Empty(title string) Resume {
	if strings.TrimSpace(title) == "" {
		title = "Untitled Resume"
	}
	return Resume{
		Title: title,
		Content: Content{
			Sections:     []Section{},
			SectionOrder: []string{},
		},
	}
}
