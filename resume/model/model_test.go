package model

import (
	"testing"
)

func sampleContent() Content {
	enabled := true
	return Content{
		Basics: Basics{Name: "Ada Lovelace", Email: "ada@example.com"},
		Sections: []Section{
			{ID: "work-1", Type: "work", Title: "Work", Enabled: &enabled, Content: []Item{
				{"id": "item-1", "company": "Analytical Engines Ltd", "achievements": []any{"first program"}},
			}},
			{ID: "skills-1", Type: "skills", Title: "Skills", Content: []Item{
				{"id": "item-2", "name": "Mathematics", "level": 5},
			}},
		},
		SectionOrder: []string{"work-1", "skills-1"},
	}
}

func TestNormalizeDropsUnknownAndAppendsMissing(t *testing.T) {
	c := sampleContent()
	c.SectionOrder = []string{"skills-1", "ghost-1"}

	c.Normalize()

	want := []string{"skills-1", "work-1"}
	if len(c.SectionOrder) != len(want) {
		t.Fatalf("order length = %d, want %d (%v)", len(c.SectionOrder), len(want), c.SectionOrder)
	}
	for i := range want {
		if c.SectionOrder[i] != want[i] {
			t.Fatalf("order = %v, want %v", c.SectionOrder, want)
		}
	}
}

func TestNormalizeDedupes(t *testing.T) {
	c := sampleContent()
	c.SectionOrder = []string{"work-1", "work-1", "skills-1"}

	c.Normalize()

	if len(c.SectionOrder) != 2 {
		t.Fatalf("expected dedup to 2 entries, got %v", c.SectionOrder)
	}
}

func TestNormalizeKeepsValidOrder(t *testing.T) {
	c := sampleContent()
	c.SectionOrder = []string{"skills-1", "work-1"}

	c.Normalize()

	if c.SectionOrder[0] != "skills-1" || c.SectionOrder[1] != "work-1" {
		t.Fatalf("valid order changed: %v", c.SectionOrder)
	}
}

func TestCloneIsDeep(t *testing.T) {
	c := sampleContent()
	clone := c.Clone()

	clone.Sections[0].Title = "Changed"
	clone.Sections[0].Content[0]["company"] = "Changed Corp"
	if list, ok := clone.Sections[0].Content[0]["achievements"].([]any); ok {
		list[0] = "changed"
	}
	clone.SectionOrder[0] = "changed-1"

	if c.Sections[0].Title != "Work" {
		t.Fatalf("section title leaked: %q", c.Sections[0].Title)
	}
	if c.Sections[0].Content[0].String("company") != "Analytical Engines Ltd" {
		t.Fatalf("item value leaked: %q", c.Sections[0].Content[0].String("company"))
	}
	if got := c.Sections[0].Content[0]["achievements"].([]any)[0]; got != "first program" {
		t.Fatalf("nested slice leaked: %v", got)
	}
	if c.SectionOrder[0] != "work-1" {
		t.Fatalf("order leaked: %v", c.SectionOrder)
	}
}

func TestItemMergeSkipsID(t *testing.T) {
	item := Item{"id": "item-1", "company": "Acme", "position": "Engineer"}
	merged := item.Merge(map[string]any{"id": "evil", "company": "Globex"})

	if merged.ID() != "item-1" {
		t.Fatalf("id overwritten: %q", merged.ID())
	}
	if merged.String("company") != "Globex" {
		t.Fatalf("patch not applied: %q", merged.String("company"))
	}
	if item.String("company") != "Acme" {
		t.Fatalf("merge mutated receiver: %q", item.String("company"))
	}
}

func TestItemEnabledOrDefault(t *testing.T) {
	if !(Item{"id": "x"}).EnabledOrDefault() {
		t.Fatalf("missing flag should read enabled")
	}
	if (Item{"id": "x", "enabled": false}).EnabledOrDefault() {
		t.Fatalf("explicit false should read disabled")
	}
}

func TestEmptyDefaultsTitle(t *testing.T) {
	r := Empty("  ")
	if r.Title != "Untitled Resume" {
		t.Fatalf("expected default title, got %q", r.Title)
	}
	if r.Content.Sections == nil || r.Content.SectionOrder == nil {
		t.Fatalf("expected initialized slices")
	}
}

func TestFindSection(t *testing.T) {
	c := sampleContent()
	if idx := c.FindSection("skills-1"); idx != 1 {
		t.Fatalf("expected index 1, got %d", idx)
	}
	if idx := c.FindSection("nope"); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}
