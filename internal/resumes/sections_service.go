package resumes

import (
	"context"
	"fmt"
	"time"

	"resume-builder/resume/model"
	"resume-builder/resume/sections"
)

// Section editing runs through the pure transforms in resume/sections: load
// the record, apply the transform, re-validate and persist. Every method is
// owner-scoped via Repo.Get.

// ListSections returns the resume's sections in display order.
func (s *Service) ListSections(ctx context.Context, userID, resumeID string) ([]model.Section, error) {
	rec, err := s.Repo.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, err
	}

	ordered := make([]model.Section, 0, len(rec.Content.Sections))
	for _, id := range rec.Content.SectionOrder {
		if idx := rec.Content.FindSection(id); idx != -1 {
			ordered = append(ordered, rec.Content.Sections[idx])
		}
	}
	return ordered, nil
}

// AddSection appends a new empty section of the given type and returns it.
func (s *Service) AddSection(ctx context.Context, userID, resumeID, sectionType, title string) (model.Section, error) {
	rec, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		return sections.CreateSection(r, sectionType, title)
	})
	if err != nil {
		return model.Section{}, err
	}
	return rec.Content.Sections[len(rec.Content.Sections)-1], nil
}

// UpdateSection patches a section's title and visibility.
func (s *Service) UpdateSection(ctx context.Context, userID, resumeID, sectionID string, patch sections.SectionPatch) (model.Section, error) {
	rec, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		return sections.UpdateSection(r, sectionID, patch)
	})
	if err != nil {
		return model.Section{}, err
	}
	return sectionByID(rec, sectionID)
}

// DeleteSection removes a section and its order entry.
func (s *Service) DeleteSection(ctx context.Context, userID, resumeID, sectionID string) error {
	_, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		return sections.DeleteSection(r, sectionID), nil
	})
	return err
}

// ReorderSections replaces the section order with a permutation of it.
func (s *Service) ReorderSections(ctx context.Context, userID, resumeID string, order []string) error {
	_, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		return sections.ReorderSections(r, order)
	})
	return err
}

// AddSectionItem appends a default item to the section, applies the optional
// patch on top and returns the stored item.
func (s *Service) AddSectionItem(ctx context.Context, userID, resumeID, sectionID string, patch map[string]any) (model.Item, error) {
	var itemID string
	rec, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		next, err := sections.AddItemToSection(r, sectionID)
		if err != nil {
			return model.Resume{}, err
		}
		idx := next.Content.FindSection(sectionID)
		added := next.Content.Sections[idx].Content
		itemID = added[len(added)-1].ID()
		if len(patch) == 0 {
			return next, nil
		}
		return sections.UpdateSectionItem(next, sectionID, itemID, patch)
	})
	if err != nil {
		return nil, err
	}
	return itemByID(rec, sectionID, itemID)
}

// UpdateSectionItem shallow-merges the patch onto the item and returns it.
func (s *Service) UpdateSectionItem(ctx context.Context, userID, resumeID, sectionID, itemID string, patch map[string]any) (model.Item, error) {
	rec, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		return sections.UpdateSectionItem(r, sectionID, itemID, patch)
	})
	if err != nil {
		return nil, err
	}
	return itemByID(rec, sectionID, itemID)
}

// DeleteSectionItem removes the item; an unknown item ID is a no-op.
func (s *Service) DeleteSectionItem(ctx context.Context, userID, resumeID, sectionID, itemID string) error {
	_, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		return sections.DeleteSectionItem(r, sectionID, itemID)
	})
	return err
}

// SetSectionItemEnabled sets the item's visibility and returns the item.
func (s *Service) SetSectionItemEnabled(ctx context.Context, userID, resumeID, sectionID, itemID string, enabled bool) (model.Item, error) {
	rec, err := s.applyTransform(ctx, userID, resumeID, func(r model.Resume) (model.Resume, error) {
		return sections.SetSectionItemEnabled(r, sectionID, itemID, enabled)
	})
	if err != nil {
		return nil, err
	}
	return itemByID(rec, sectionID, itemID)
}

func (s *Service) applyTransform(ctx context.Context, userID, resumeID string, fn func(model.Resume) (model.Resume, error)) (Record, error) {
	rec, err := s.Repo.Get(ctx, userID, resumeID)
	if err != nil {
		return Record{}, err
	}

	next, err := fn(rec.Resume())
	if err != nil {
		return Record{}, err
	}

	next.Content.Normalize()
	if id, ok := sections.ValidateContent(next.Content); !ok {
		return Record{}, fmt.Errorf("%w: section %q", ErrInvalidContent, id)
	}

	rec.Content = next.Content
	rec.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

func sectionByID(rec Record, sectionID string) (model.Section, error) {
	idx := rec.Content.FindSection(sectionID)
	if idx == -1 {
		return model.Section{}, fmt.Errorf("%w: %s", sections.ErrSectionNotFound, sectionID)
	}
	return rec.Content.Sections[idx], nil
}

func itemByID(rec Record, sectionID, itemID string) (model.Item, error) {
	sec, err := sectionByID(rec, sectionID)
	if err != nil {
		return nil, err
	}
	idx := sec.FindItem(itemID)
	if idx == -1 {
		return nil, fmt.Errorf("%w: %s", sections.ErrItemNotFound, itemID)
	}
	return sec.Content[idx], nil
}
