// Package sections holds the section registry and the pure transforms that
// edit a resume's section list. Every transform takes a resume value and
// returns a new one; inputs are never mutated or aliased.
package sections

import (
	"fmt"

	"resume-builder/resume/model"
)

// CreateSection appends a new, empty section of the given type and adds its
// ID to the section order. An empty title falls back to the registry title.
func CreateSection(r model.Resume, sectionType, title string) (model.Resume, error) {
	def, ok := registry[sectionType]
	if !ok {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrInvalidSectionType, sectionType)
	}
	if title == "" {
		title = def.Title
	}

	out := r.Clone()
	enabled := true
	section := model.Section{
		ID:       NewSectionID(sectionType),
		Type:     sectionType,
		Title:    title,
		Content:  []model.Item{},
		Enabled:  &enabled,
		IsCustom: sectionType == TypeCustom,
	}
	out.Content.Sections = append(out.Content.Sections, section)
	out.Content.SectionOrder = append(out.Content.SectionOrder, section.ID)
	return out, nil
}

// AddItemToSection appends a fresh default item for the section's type.
func AddItemToSection(r model.Resume, sectionID string) (model.Resume, error) {
	out := r.Clone()
	idx := out.Content.FindSection(sectionID)
	if idx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	item, err := DefaultItem(out.Content.Sections[idx].Type)
	if err != nil {
		return model.Resume{}, err
	}
	out.Content.Sections[idx].Content = append(out.Content.Sections[idx].Content, item)
	return out, nil
}

// UpdateSectionItem shallow-merges the patch onto the identified item. Keys
// present in the patch replace the item's values wholesale; the item ID is
// preserved.
func UpdateSectionItem(r model.Resume, sectionID, itemID string, patch map[string]any) (model.Resume, error) {
	out := r.Clone()
	secIdx := out.Content.FindSection(sectionID)
	if secIdx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	itemIdx := out.Content.Sections[secIdx].FindItem(itemID)
	if itemIdx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	out.Content.Sections[secIdx].Content[itemIdx] = out.Content.Sections[secIdx].Content[itemIdx].Merge(patch)
	return out, nil
}

// SectionPatch carries the section fields a caller may change. Nil fields are
// left untouched.
type SectionPatch struct {
	Title   *string
	Enabled *bool
}

// UpdateSection applies a patch to the section's own fields. Items are edited
// through the item transforms, never here.
func UpdateSection(r model.Resume, sectionID string, patch SectionPatch) (model.Resume, error) {
	out := r.Clone()
	idx := out.Content.FindSection(sectionID)
	if idx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	if patch.Title != nil && *patch.Title != "" {
		out.Content.Sections[idx].Title = *patch.Title
	}
	if patch.Enabled != nil {
		enabled := *patch.Enabled
		out.Content.Sections[idx].Enabled = &enabled
	}
	return out, nil
}

// SetSectionItemEnabled sets the item's visibility to an explicit value.
func SetSectionItemEnabled(r model.Resume, sectionID, itemID string, enabled bool) (model.Resume, error) {
	out := r.Clone()
	secIdx := out.Content.FindSection(sectionID)
	if secIdx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	itemIdx := out.Content.Sections[secIdx].FindItem(itemID)
	if itemIdx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	out.Content.Sections[secIdx].Content[itemIdx]["enabled"] = enabled
	return out, nil
}

// ToggleSectionItemEnabled flips the item's visibility. A missing flag counts
// as visible, so the first toggle always hides.
func ToggleSectionItemEnabled(r model.Resume, sectionID, itemID string) (model.Resume, error) {
	out := r.Clone()
	secIdx := out.Content.FindSection(sectionID)
	if secIdx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	itemIdx := out.Content.Sections[secIdx].FindItem(itemID)
	if itemIdx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
	}

	item := out.Content.Sections[secIdx].Content[itemIdx]
	item["enabled"] = !item.EnabledOrDefault()
	return out, nil
}

// ToggleSectionEnabled flips the section's visibility with the same
// missing-means-visible rule as items.
func ToggleSectionEnabled(r model.Resume, sectionID string) (model.Resume, error) {
	out := r.Clone()
	idx := out.Content.FindSection(sectionID)
	if idx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	flipped := !out.Content.Sections[idx].EnabledOrDefault()
	out.Content.Sections[idx].Enabled = &flipped
	return out, nil
}

// DeleteSectionItem removes the item by ID. An absent item is a no-op, not an
// error (filter semantics).
func DeleteSectionItem(r model.Resume, sectionID, itemID string) (model.Resume, error) {
	out := r.Clone()
	idx := out.Content.FindSection(sectionID)
	if idx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	items := out.Content.Sections[idx].Content
	kept := items[:0]
	for _, it := range items {
		if it.ID() != itemID {
			kept = append(kept, it)
		}
	}
	out.Content.Sections[idx].Content = kept
	return out, nil
}

// DeleteSection removes the section from both the section set and the order
// in one transform, keeping the permutation invariant intact. Unknown IDs are
// a no-op.
func DeleteSection(r model.Resume, sectionID string) model.Resume {
	out := r.Clone()

	secs := out.Content.Sections
	keptSecs := secs[:0]
	for _, sec := range secs {
		if sec.ID != sectionID {
			keptSecs = append(keptSecs, sec)
		}
	}
	out.Content.Sections = keptSecs

	order := out.Content.SectionOrder
	keptOrder := order[:0]
	for _, id := range order {
		if id != sectionID {
			keptOrder = append(keptOrder, id)
		}
	}
	out.Content.SectionOrder = keptOrder
	return out
}

// ReorderSections replaces the section order. The new order must be a
// permutation of the current one; a missing or extra ID fails with
// ErrInvalidReorder.
func ReorderSections(r model.Resume, newOrder []string) (model.Resume, error) {
	if err := checkPermutation(r.Content.SectionOrder, newOrder); err != nil {
		return model.Resume{}, err
	}

	out := r.Clone()
	out.Content.SectionOrder = make([]string, len(newOrder))
	copy(out.Content.SectionOrder, newOrder)
	return out, nil
}

// MoveSection computes the classic drag-and-drop array move: the section is
// removed from its current position and reinserted at the target index, then
// applied through ReorderSections.
func MoveSection(r model.Resume, sectionID string, toIndex int) (model.Resume, error) {
	order := r.Content.SectionOrder
	from := -1
	for i, id := range order {
		if id == sectionID {
			from = i
			break
		}
	}
	if from == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}
	if toIndex < 0 {
		toIndex = 0
	}
	if toIndex >= len(order) {
		toIndex = len(order) - 1
	}

	moved := make([]string, 0, len(order))
	moved = append(moved, order[:from]...)
	moved = append(moved, order[from+1:]...)
	moved = append(moved[:toIndex], append([]string{sectionID}, moved[toIndex:]...)...)
	return ReorderSections(r, moved)
}

// ReorderSectionItems reorders the items of one section. Every ID in the new
// order must resolve to an existing item and the order must cover the section
// exactly once per item.
func ReorderSectionItems(r model.Resume, sectionID string, newItemOrder []string) (model.Resume, error) {
	out := r.Clone()
	idx := out.Content.FindSection(sectionID)
	if idx == -1 {
		return model.Resume{}, fmt.Errorf("%w: %s", ErrSectionNotFound, sectionID)
	}

	section := out.Content.Sections[idx]
	byID := make(map[string]model.Item, len(section.Content))
	for _, it := range section.Content {
		byID[it.ID()] = it
	}
	if len(newItemOrder) != len(section.Content) {
		return model.Resume{}, ErrInvalidReorder
	}

	reordered := make([]model.Item, 0, len(newItemOrder))
	seen := make(map[string]bool, len(newItemOrder))
	for _, itemID := range newItemOrder {
		item, ok := byID[itemID]
		if !ok || seen[itemID] {
			return model.Resume{}, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
		}
		seen[itemID] = true
		reordered = append(reordered, item)
	}
	out.Content.Sections[idx].Content = reordered
	return out, nil
}

// ValidateSection reports whether a section is structurally valid: its type
// must be registered and, for non-custom types, every item must carry all
// template keys except id/enabled. Values may be empty; keys must be present.
// Custom sections are always valid.
func ValidateSection(section model.Section) bool {
	def, ok := registry[section.Type]
	if !ok {
		return false
	}
	if section.Type == TypeCustom {
		return true
	}

	required := requiredKeys(def)
	for _, item := range section.Content {
		if item.ID() == "" {
			return false
		}
		for _, key := range required {
			if !item.HasKey(key) {
				return false
			}
		}
	}
	return true
}

// ValidateContent runs ValidateSection across the whole content and checks
// the order/set invariant. It returns the first offending section ID.
func ValidateContent(c model.Content) (string, bool) {
	if len(c.SectionOrder) != len(c.Sections) {
		return "", false
	}
	known := make(map[string]bool, len(c.Sections))
	for _, sec := range c.Sections {
		known[sec.ID] = true
	}
	for _, id := range c.SectionOrder {
		if !known[id] {
			return id, false
		}
	}
	for _, sec := range c.Sections {
		if !ValidateSection(sec) {
			return sec.ID, false
		}
	}
	return "", true
}

func checkPermutation(current, proposed []string) error {
	if len(current) != len(proposed) {
		return ErrInvalidReorder
	}
	counts := make(map[string]int, len(current))
	for _, id := range current {
		counts[id]++
	}
	for _, id := range proposed {
		counts[id]--
		if counts[id] < 0 {
			return fmt.Errorf("%w: unexpected id %s", ErrInvalidReorder, id)
		}
	}
	for id, n := range counts {
		if n != 0 {
			return fmt.Errorf("%w: missing id %s", ErrInvalidReorder, id)
		}
	}
	return nil
}
