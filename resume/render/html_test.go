package render

import (
	"strings"
	"testing"

	"resume-builder/resume/model"
)

func sampleResume() model.Resume {
	disabled := false
	return model.Resume{
		ID:    "r-1",
		Title: "Backend Engineer",
		Content: model.Content{
			Basics: model.Basics{
				Name:  "Ada Lovelace",
				Label: "Engineer",
				Email: "ada@example.com",
				Phone: "+44 20 0000",
				Location: model.Location{
					City:        "London",
					CountryCode: "GB",
				},
			},
			Sections: []model.Section{
				{ID: "work-1", Type: "work", Title: "Professional Experience", Content: []model.Item{
					{"id": "i1", "company": "Analytical Engines Ltd", "position": "Programmer",
						"startDate": "1842-01", "endDate": "1843-09", "enabled": true},
					{"id": "i2", "company": "Hidden Corp", "position": "Ghost", "enabled": false},
				}},
				{ID: "skills-1", Type: "skills", Title: "Skills", Content: []model.Item{
					{"id": "i3", "name": "Mathematics", "level": 5},
				}},
				{ID: "interests-1", Type: "interests", Title: "Hidden Section", Enabled: &disabled, Content: []model.Item{
					{"id": "i4", "name": "Secrets"},
				}},
			},
			SectionOrder: []string{"skills-1", "work-1", "interests-1", "ghost-1"},
		},
	}
}

func TestHTMLRendersBasicsAndSections(t *testing.T) {
	out, err := HTML(sampleResume())
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	html := string(out)

	for _, want := range []string{
		"Ada Lovelace",
		"ada@example.com",
		"Professional Experience",
		"Analytical Engines Ltd",
		"Mathematics",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestHTMLFollowsSectionOrder(t *testing.T) {
	out, err := HTML(sampleResume())
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	html := string(out)

	skillsAt := strings.Index(html, "Mathematics")
	workAt := strings.Index(html, "Analytical Engines Ltd")
	if skillsAt == -1 || workAt == -1 {
		t.Fatalf("expected both sections rendered")
	}
	if skillsAt > workAt {
		t.Fatalf("expected skills before work per sectionOrder")
	}
}

func TestHTMLSkipsDisabled(t *testing.T) {
	out, err := HTML(sampleResume())
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	html := string(out)

	if strings.Contains(html, "Hidden Section") || strings.Contains(html, "Secrets") {
		t.Fatalf("disabled section rendered")
	}
	if strings.Contains(html, "Hidden Corp") {
		t.Fatalf("disabled item rendered")
	}
}

func TestHTMLToleratesUnresolvedOrderEntries(t *testing.T) {
	r := sampleResume()
	r.Content.SectionOrder = []string{"ghost-1", "work-1"}

	out, err := HTML(r)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if !strings.Contains(string(out), "Analytical Engines Ltd") {
		t.Fatalf("resolvable section missing")
	}
}

func TestHTMLEscapesUserContent(t *testing.T) {
	r := sampleResume()
	r.Content.Basics.Name = `<script>alert("x")</script>`

	out, err := HTML(r)
	if err != nil {
		t.Fatalf("render html: %v", err)
	}
	if strings.Contains(string(out), "<script>alert") {
		t.Fatalf("user content not escaped")
	}
}

func TestLevelDots(t *testing.T) {
	if got := levelDots(3); strings.Count(got, "●") != 3 {
		t.Fatalf("expected 3 dots, got %q", got)
	}
	if got := levelDots(0); got != "" {
		t.Fatalf("expected empty for level 0, got %q", got)
	}
	if got := levelDots(99); strings.Count(got, "●") != 10 {
		t.Fatalf("expected cap at 10 dots, got %q", got)
	}
}

func TestDateSpan(t *testing.T) {
	if got := dateSpan("2020-01", "2021-06"); got != "2020-01 – 2021-06" {
		t.Fatalf("unexpected range %q", got)
	}
	if got := dateSpan("2020-01", ""); got != "2020-01" {
		t.Fatalf("unexpected open range %q", got)
	}
	if got := dateSpan("", ""); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}

func TestDateRangeIsCurrent(t *testing.T) {
	item := model.Item{"id": "x", "startDate": "2020-01", "endDate": "2022-01", "isCurrent": true}
	if got := dateRange(item); got != "2020-01 – Present" {
		t.Fatalf("expected Present for current role, got %q", got)
	}
}
