package sections

import (
	"fmt"
	"sort"

	"github.com/google/uuid"

	"resume-builder/resume/model"
)

// TypeCustom is the free-form section type exempt from item-shape validation.
const TypeCustom = "custom"

// Definition describes one registered section type: its display title and the
// skeleton used to instantiate new items. The template's keys are the closed
// field schema for items of this type.
type Definition struct {
	Title       string
	Description string
	Default     model.Item
}

// TypeInfo is the catalog entry exposed over the API.
type TypeInfo struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

var registry = map[string]Definition{
	"education": {
		Title:       "Education",
		Description: "Degrees, schools and academic history",
		Default: model.Item{
			"institution": "",
			"degree":      "",
			"field":       "",
			"startDate":   "",
			"endDate":     "",
			"location":    "",
			"description": "",
		},
	},
	"work": {
		Title:       "Professional Experience",
		Description: "Jobs and positions held",
		Default: model.Item{
			"company":      "",
			"position":     "",
			"startDate":    "",
			"endDate":      "",
			"location":     "",
			"description":  "",
			"achievements": []string{},
			"isCurrent":    false,
		},
	},
	"skills": {
		Title:       "Skills",
		Description: "General skills with a 1-5 level",
		Default: model.Item{
			"name":      "",
			"level":     3,
			"subSkills": []string{},
		},
	},
	"languages": {
		Title:       "Languages",
		Description: "Spoken languages and proficiency",
		Default: model.Item{
			"language":    "",
			"proficiency": "Professional Working",
			"level":       3,
		},
	},
	"certificates": {
		Title:       "Certificates",
		Description: "Certifications and credentials",
		Default: model.Item{
			"name":           "",
			"issuer":         "",
			"issueDate":      "",
			"expirationDate": "",
			"credentialID":   "",
			"credentialURL":  "",
		},
	},
	"interests": {
		Title:       "Interests",
		Description: "Hobbies and personal interests",
		Default: model.Item{
			"name":        "",
			"description": "",
		},
	},
	"projects": {
		Title:       "Projects",
		Description: "Personal and professional projects",
		Default: model.Item{
			"name":         "",
			"description":  "",
			"startDate":    "",
			"endDate":      "",
			"url":          "",
			"technologies": []string{},
			"achievements": []string{},
		},
	},
	"courses": {
		Title:       "Courses",
		Description: "Courses and trainings completed",
		Default: model.Item{
			"name":           "",
			"institution":    "",
			"date":           "",
			"description":    "",
			"certificateURL": "",
		},
	},
	"awards": {
		Title:       "Awards",
		Description: "Awards and honors received",
		Default: model.Item{
			"title":       "",
			"date":        "",
			"issuer":      "",
			"description": "",
		},
	},
	"organizations": {
		Title:       "Organizations",
		Description: "Memberships and volunteer roles",
		Default: model.Item{
			"name":        "",
			"role":        "",
			"startDate":   "",
			"endDate":     "",
			"description": "",
		},
	},
	"publications": {
		Title:       "Publications",
		Description: "Papers, articles and books",
		Default: model.Item{
			"title":       "",
			"publisher":   "",
			"date":        "",
			"authors":     []string{},
			"url":         "",
			"description": "",
		},
	},
	"references": {
		Title:       "References",
		Description: "Professional references",
		Default: model.Item{
			"name":      "",
			"company":   "",
			"position":  "",
			"email":     "",
			"phone":     "",
			"reference": "",
		},
	},
	"softSkills": {
		Title:       "Soft Skills",
		Description: "Interpersonal and communication skills",
		Default: model.Item{
			"name":      "",
			"level":     3,
			"subSkills": []string{},
		},
	},
	"achievements": {
		Title:       "Achievements",
		Description: "Notable accomplishments",
		Default: model.Item{
			"title":       "",
			"date":        "",
			"description": "",
		},
	},
	"technicalSkills": {
		Title:       "Technical Skills",
		Description: "Tools, languages and technologies",
		Default: model.Item{
			"name":      "",
			"level":     3,
			"subSkills": []string{},
		},
	},
	TypeCustom: {
		Title:       "Custom Section",
		Description: "Free-form section with custom entries",
		Default: model.Item{
			"title":       "",
			"description": "",
		},
	},
}

// IsRegistered reports whether the type belongs to the closed set.
func IsRegistered(sectionType string) bool {
	_, ok := registry[sectionType]
	return ok
}

// Lookup returns the definition for a registered type.
func Lookup(sectionType string) (Definition, bool) {
	def, ok := registry[sectionType]
	return def, ok
}

// Types lists the catalog sorted by type ID for a stable API response.
func Types() []TypeInfo {
	out := make([]TypeInfo, 0, len(registry))
	for id, def := range registry {
		out = append(out, TypeInfo{ID: id, Title: def.Title, Description: def.Description})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// DefaultItem instantiates a fresh item for the given section type: a deep
// copy of the registry template with a new unique ID and enabled set to true.
// There is no fallback template for unknown types.
func DefaultItem(sectionType string) (model.Item, error) {
	def, ok := registry[sectionType]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSectionType, sectionType)
	}
	item := def.Default.Clone()
	item.SetID(uuid.NewString())
	item["enabled"] = true
	return item, nil
}

// NewSectionID generates a section identifier. The type prefix is kept for
// readability; the UUID suffix makes collisions a non-concern.
func NewSectionID(sectionType string) string {
	return sectionType + "-" + uuid.NewString()
}

// requiredKeys lists the template keys every non-custom item must carry,
// excluding the shared base fields.
func requiredKeys(def Definition) []string {
	keys := make([]string, 0, len(def.Default))
	for k := range def.Default {
		if k == "id" || k == "enabled" {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}
