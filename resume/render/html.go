// Package render turns a resume into its print-oriented representations.
// HTML is the canonical output; PDF is produced by printing the HTML through
// headless Chrome.
package render

import (
	"bytes"
	_ "embed"
	"html/template"
	"strings"

	"resume-builder/resume/model"
)

//go:embed templates/resume.html.tmpl
var resumeTemplate string

var tmpl = template.Must(template.New("resume").Funcs(template.FuncMap{
	"join": func(parts []string, sep string) string {
		kept := parts[:0]
		for _, p := range parts {
			if strings.TrimSpace(p) != "" {
				kept = append(kept, p)
			}
		}
		return strings.Join(kept, sep)
	},
}).Parse(resumeTemplate))

// renderSection is a section resolved for display: only enabled sections in
// sectionOrder, with disabled items filtered out.
type renderSection struct {
	Title string
	Type  string
	Items []renderItem
}

type renderItem struct {
	Heading   string
	Subline   string
	Dates     string
	Location  string
	Body      string
	Tags      []string
	LevelDots string
}

type renderData struct {
	Title    string
	Basics   model.Basics
	Contact  string
	Sections []renderSection
}

// HTML renders the resume into a standalone print-oriented document. It
// iterates sectionOrder, skips IDs that do not resolve, and omits disabled
// sections and items.
func HTML(r model.Resume) ([]byte, error) {
	basics := r.Content.Basics
	data := renderData{
		Title:  r.Title,
		Basics: basics,
		Contact: joinNonEmpty(" · ",
			basics.Email,
			basics.Phone,
			joinNonEmpty(", ", basics.Location.City, basics.Location.CountryCode),
		),
	}

	for _, sectionID := range r.Content.SectionOrder {
		idx := r.Content.FindSection(sectionID)
		if idx == -1 {
			continue
		}
		section := r.Content.Sections[idx]
		if !section.EnabledOrDefault() {
			continue
		}

		rs := renderSection{Title: section.Title, Type: section.Type}
		for _, item := range section.Content {
			if !item.EnabledOrDefault() {
				continue
			}
			rs.Items = append(rs.Items, buildItem(section.Type, item))
		}
		data.Sections = append(data.Sections, rs)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildItem maps the per-type item fields onto the generic display slots the
// template understands.
func buildItem(sectionType string, item model.Item) renderItem {
	out := renderItem{
		Dates:    dateRange(item),
		Location: item.String("location"),
		Body:     item.String("description"),
	}

	switch sectionType {
	case "education":
		out.Heading = item.String("institution")
		out.Subline = joinNonEmpty(" in ", item.String("degree"), item.String("field"))
	case "work":
		out.Heading = item.String("position")
		out.Subline = item.String("company")
		out.Tags = item.Strings("achievements")
	case "skills", "softSkills", "technicalSkills":
		out.Heading = item.String("name")
		out.LevelDots = levelDots(intValue(item, "level"))
		out.Tags = item.Strings("subSkills")
	case "languages":
		out.Heading = item.String("language")
		out.Subline = item.String("proficiency")
		out.LevelDots = levelDots(intValue(item, "level"))
	case "certificates":
		out.Heading = item.String("name")
		out.Subline = item.String("issuer")
		out.Dates = dateSpan(item.String("issueDate"), item.String("expirationDate"))
	case "projects":
		out.Heading = item.String("name")
		out.Subline = item.String("url")
		out.Tags = item.Strings("technologies")
	case "courses":
		out.Heading = item.String("name")
		out.Subline = item.String("institution")
		out.Dates = item.String("date")
	case "awards", "achievements":
		out.Heading = item.String("title")
		out.Subline = item.String("issuer")
		out.Dates = item.String("date")
	case "organizations":
		out.Heading = item.String("name")
		out.Subline = item.String("role")
	case "publications":
		out.Heading = item.String("title")
		out.Subline = joinNonEmpty(", ", item.String("publisher"), strings.Join(item.Strings("authors"), ", "))
		out.Dates = item.String("date")
	case "references":
		out.Heading = item.String("name")
		out.Subline = joinNonEmpty(", ", item.String("position"), item.String("company"))
		out.Body = firstNonEmpty(item.String("reference"), item.String("description"))
	default:
		out.Heading = firstNonEmpty(item.String("title"), item.String("name"))
	}
	return out
}

func dateRange(item model.Item) string {
	start := item.String("startDate")
	end := item.String("endDate")
	if current, ok := item["isCurrent"].(bool); ok && current {
		end = "Present"
	}
	return dateSpan(start, end)
}

func dateSpan(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start
	case start == "":
		return end
	default:
		return start + " – " + end
	}
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func levelDots(level int) string {
	if level <= 0 {
		return ""
	}
	if level > 10 {
		level = 10
	}
	return strings.Repeat("\u25cf", level)
}

func intValue(item model.Item, key string) int {
	switch v := item[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}
