package sections

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestDefaultItemClonesTemplate(t *testing.T) {
	first, err := DefaultItem("work")
	if err != nil {
		t.Fatalf("default item: %v", err)
	}
	second, err := DefaultItem("work")
	if err != nil {
		t.Fatalf("default item: %v", err)
	}

	if first.ID() == "" || second.ID() == "" {
		t.Fatalf("expected generated ids")
	}
	if first.ID() == second.ID() {
		t.Fatalf("expected unique ids, both %q", first.ID())
	}

	// Mutating one instance must not leak into the template or siblings.
	if list, ok := first["achievements"].([]string); ok {
		first["achievements"] = append(list, "shipped")
	} else if list, ok := first["achievements"].([]any); ok {
		first["achievements"] = append(list, "shipped")
	} else {
		t.Fatalf("expected achievements slice, got %T", first["achievements"])
	}
	third, err := DefaultItem("work")
	if err != nil {
		t.Fatalf("default item: %v", err)
	}
	switch list := third["achievements"].(type) {
	case []string:
		if len(list) != 0 {
			t.Fatalf("template polluted: %v", list)
		}
	case []any:
		if len(list) != 0 {
			t.Fatalf("template polluted: %v", list)
		}
	default:
		t.Fatalf("expected achievements slice, got %T", third["achievements"])
	}
}

func TestDefaultItemUnknownType(t *testing.T) {
	if _, err := DefaultItem("hobbies"); !errors.Is(err, ErrInvalidSectionType) {
		t.Fatalf("expected ErrInvalidSectionType, got %v", err)
	}
}

func TestTypesSortedAndComplete(t *testing.T) {
	types := Types()
	if len(types) != 16 {
		t.Fatalf("expected 16 section types, got %d", len(types))
	}
	ids := make([]string, 0, len(types))
	for _, info := range types {
		if info.Title == "" {
			t.Fatalf("type %q has no title", info.ID)
		}
		ids = append(ids, info.ID)
	}
	if !sort.StringsAreSorted(ids) {
		t.Fatalf("expected sorted type ids, got %v", ids)
	}
	for _, required := range []string{"education", "work", "skills", "custom"} {
		if !IsRegistered(required) {
			t.Fatalf("expected %q to be registered", required)
		}
	}
}

func TestNewSectionIDCarriesTypePrefix(t *testing.T) {
	id := NewSectionID("education")
	if !strings.HasPrefix(id, "education-") {
		t.Fatalf("expected type prefix, got %q", id)
	}
	if id == NewSectionID("education") {
		t.Fatalf("expected unique ids")
	}
}
