package resumes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"resume-builder/internal/extract"
	"resume-builder/internal/llm"
	"resume-builder/internal/shared/storage/object"
	"resume-builder/internal/shared/util"
	"resume-builder/resume/model"
	"resume-builder/resume/render"
	"resume-builder/resume/sections"
)

// Service owns resume lifecycle, AI generation and export.
type Service struct {
	Repo     Repo
	LLM      llm.Client
	Store    object.ObjectStore
	Renderer *render.PDFRenderer
}

// NewService constructs a resume Service.
func NewService(repo Repo, client llm.Client, store object.ObjectStore, renderer *render.PDFRenderer) *Service {
	return &Service{Repo: repo, LLM: client, Store: store, Renderer: renderer}
}

// Create stores a new resume for the user. A nil content starts from the
// empty template.
func (s *Service) Create(ctx context.Context, userID, title string, content *model.Content) (Record, error) {
	base := model.Empty(title)
	if content != nil {
		base.Content = content.Clone()
	}
	return s.insert(ctx, userID, base.Title, base.Content)
}

// Get returns one resume owned by the user.
func (s *Service) Get(ctx context.Context, userID, resumeID string) (Record, error) {
	return s.Repo.Get(ctx, userID, resumeID)
}

// List returns the user's resumes, most recently updated first.
func (s *Service) List(ctx context.Context, userID string) ([]Record, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Update replaces title and content of an existing resume.
func (s *Service) Update(ctx context.Context, userID, resumeID, title string, content model.Content) (Record, error) {
	rec, err := s.Repo.Get(ctx, userID, resumeID)
	if err != nil {
		return Record{}, err
	}

	next := content.Clone()
	next.Normalize()
	if id, ok := sections.ValidateContent(next); !ok {
		return Record{}, fmt.Errorf("%w: section %q", ErrInvalidContent, id)
	}

	if strings.TrimSpace(title) != "" {
		rec.Title = strings.TrimSpace(title)
	}
	rec.Content = next
	rec.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Delete removes a resume owned by the user.
func (s *Service) Delete(ctx context.Context, userID, resumeID string) error {
	return s.Repo.Delete(ctx, userID, resumeID)
}

// Duplicate copies an existing resume under a new ID with a "(Copy)" title.
func (s *Service) Duplicate(ctx context.Context, userID, resumeID string) (Record, error) {
	rec, err := s.Repo.Get(ctx, userID, resumeID)
	if err != nil {
		return Record{}, err
	}
	return s.insert(ctx, userID, rec.Title+" (Copy)", rec.Content.Clone())
}

// Generate produces a resume from a free-text prompt and stores it.
func (s *Service) Generate(ctx context.Context, userID, prompt string) (Record, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return Record{}, fmt.Errorf("%w: prompt is required", ErrInvalidInput)
	}
	return s.generateAndStore(ctx, userID, llm.GenerateInput{Prompt: prompt})
}

// Import stores an uploaded source document, extracts its text and generates
// a resume from it.
func (s *Service) Import(ctx context.Context, userID, fileName, mimeType string, data []byte) (Record, error) {
	if len(data) == 0 {
		return Record{}, fmt.Errorf("%w: empty file", ErrInvalidInput)
	}

	key, _, storedMime, err := s.Store.Save(ctx, userID, fileName, bytes.NewReader(data))
	if err != nil {
		return Record{}, fmt.Errorf("store upload: %w", err)
	}
	if mimeType == "" {
		mimeType = storedMime
	}

	text, err := extract.Text(ctx, s.Store, key, mimeType, fileName)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if strings.TrimSpace(text) == "" {
		return Record{}, fmt.Errorf("%w: no text could be extracted", ErrInvalidInput)
	}

	return s.generateAndStore(ctx, userID, llm.GenerateInput{SourceText: text})
}

// Export renders a resume to PDF and archives a copy in the object store.
func (s *Service) Export(ctx context.Context, userID, resumeID string) ([]byte, string, error) {
	rec, err := s.Repo.Get(ctx, userID, resumeID)
	if err != nil {
		return nil, "", err
	}

	pdfBytes, err := s.Renderer.PDF(ctx, rec.Resume())
	if err != nil {
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}

	key := util.HashUserKey(userID) + "/exports/" + rec.ID + ".pdf"
	if _, err := s.Store.SaveWithKey(ctx, key, "application/pdf", bytes.NewReader(pdfBytes)); err != nil {
		return nil, "", fmt.Errorf("archive pdf: %w", err)
	}

	name, err := util.SanitizeFileName(rec.Title + ".pdf")
	if err != nil {
		name = "resume.pdf"
	}
	return pdfBytes, name, nil
}

func (s *Service) generateAndStore(ctx context.Context, userID string, input llm.GenerateInput) (Record, error) {
	raw, err := s.LLM.GenerateResume(ctx, input)
	if err != nil {
		return Record{}, fmt.Errorf("llm generate: %w", err)
	}

	generated, err := decodeGenerated(raw)
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrInvalidContent, err)
	}

	return s.insert(ctx, userID, generated.Title, generated.Content)
}

// decodeGenerated parses LLM output into the domain model and repairs the
// parts a model typically gets wrong: missing IDs, unregistered section
// types and a stale section order.
func decodeGenerated(raw json.RawMessage) (model.Resume, error) {
	var generated model.Resume
	if err := json.Unmarshal(raw, &generated); err != nil {
		return model.Resume{}, fmt.Errorf("decode generated resume: %w", err)
	}
	if strings.TrimSpace(generated.Title) == "" {
		generated.Title = "Generated Resume"
	}

	for i := range generated.Content.Sections {
		sec := &generated.Content.Sections[i]
		if !sections.IsRegistered(sec.Type) {
			sec.Type = sections.TypeCustom
			sec.IsCustom = true
		}
		if strings.TrimSpace(sec.ID) == "" {
			sec.ID = sections.NewSectionID(sec.Type)
		}
		def, _ := sections.Lookup(sec.Type)
		for j := range sec.Content {
			if sec.Content[j] == nil {
				sec.Content[j] = model.Item{}
			}
			// Backfill template keys the model omitted.
			itemID := sec.Content[j].ID()
			if itemID == "" {
				itemID = uuid.NewString()
			}
			sec.Content[j] = def.Default.Clone().Merge(sec.Content[j])
			sec.Content[j].SetID(itemID)
		}
	}
	generated.Content.Normalize()

	if id, ok := sections.ValidateContent(generated.Content); !ok {
		return model.Resume{}, fmt.Errorf("generated content failed validation at section %q", id)
	}
	return generated, nil
}

func (s *Service) insert(ctx context.Context, userID, title string, content model.Content) (Record, error) {
	content.Normalize()
	if id, ok := sections.ValidateContent(content); !ok {
		return Record{}, fmt.Errorf("%w: section %q", ErrInvalidContent, id)
	}

	now := time.Now().UTC()
	rec := Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	return rec, nil
}
