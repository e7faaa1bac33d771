package resumes

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"resume-builder/resume/model"
)

func addSectionViaAPI(t *testing.T, r *gin.Engine, token, resumeID, sectionType string) model.Section {
	t.Helper()
	resp := doJSON(t, r, http.MethodPost, "/api/sections/"+resumeID, token, map[string]any{"type": sectionType})
	if resp.Code != http.StatusCreated {
		t.Fatalf("add section: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	var sec model.Section
	if err := json.NewDecoder(resp.Body).Decode(&sec); err != nil {
		t.Fatalf("decode section: %v", err)
	}
	return sec
}

func TestSectionItemLifecycleViaAPI(t *testing.T) {
	r, token := setupResumesRouter(t, nil)
	rec := createViaAPI(t, r, token, "Editor Flow")
	sec := addSectionViaAPI(t, r, token, rec.ID, "work")

	if sec.Type != "work" || sec.Title != "Professional Experience" {
		t.Fatalf("unexpected section %+v", sec)
	}

	base := "/api/sections/" + rec.ID + "/" + sec.ID
	resp := doJSON(t, r, http.MethodPost, base+"/items", token, map[string]any{"company": "Acme"})
	if resp.Code != http.StatusCreated {
		t.Fatalf("add item: expected 201, got %d (%s)", resp.Code, resp.Body.String())
	}
	var item model.Item
	if err := json.NewDecoder(resp.Body).Decode(&item); err != nil {
		t.Fatalf("decode item: %v", err)
	}
	if item.ID() == "" {
		t.Fatalf("item has no id: %v", item)
	}
	if item["company"] != "Acme" {
		t.Fatalf("patch not applied: %v", item)
	}
	if !item.HasKey("position") {
		t.Fatalf("template keys missing: %v", item)
	}

	itemPath := base + "/items/" + item.ID()
	resp = doJSON(t, r, http.MethodPut, itemPath, token, map[string]any{"position": "Engineer"})
	if resp.Code != http.StatusOK {
		t.Fatalf("update item: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var updated model.Item
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode updated item: %v", err)
	}
	if updated.ID() != item.ID() {
		t.Fatalf("item id changed: %q != %q", updated.ID(), item.ID())
	}
	if updated["position"] != "Engineer" || updated["company"] != "Acme" {
		t.Fatalf("merge lost fields: %v", updated)
	}

	resp = doJSON(t, r, http.MethodPatch, itemPath+"/status", token, map[string]any{"enabled": false})
	if resp.Code != http.StatusOK {
		t.Fatalf("status: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var toggled model.Item
	if err := json.NewDecoder(resp.Body).Decode(&toggled); err != nil {
		t.Fatalf("decode toggled item: %v", err)
	}
	if toggled.EnabledOrDefault() {
		t.Fatalf("expected item disabled, got %v", toggled)
	}

	resp = doJSON(t, r, http.MethodDelete, itemPath, token, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete item: expected 204, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/resumes/"+rec.ID+"/sections", token, nil)
	if resp.Code != http.StatusOK {
		t.Fatalf("list sections: expected 200, got %d", resp.Code)
	}
	var listed []model.Section
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode sections: %v", err)
	}
	if len(listed) != 1 || len(listed[0].Content) != 0 {
		t.Fatalf("unexpected sections after delete: %+v", listed)
	}
}

func TestUpdateAndDeleteSectionViaAPI(t *testing.T) {
	r, token := setupResumesRouter(t, nil)
	rec := createViaAPI(t, r, token, "Editor Flow")
	sec := addSectionViaAPI(t, r, token, rec.ID, "skills")

	resp := doJSON(t, r, http.MethodPut, "/api/sections/"+rec.ID+"/"+sec.ID, token,
		map[string]any{"title": "Core Skills", "enabled": false})
	if resp.Code != http.StatusOK {
		t.Fatalf("update section: expected 200, got %d (%s)", resp.Code, resp.Body.String())
	}
	var updated model.Section
	if err := json.NewDecoder(resp.Body).Decode(&updated); err != nil {
		t.Fatalf("decode section: %v", err)
	}
	if updated.Title != "Core Skills" || updated.EnabledOrDefault() {
		t.Fatalf("patch not applied: %+v", updated)
	}

	resp = doJSON(t, r, http.MethodDelete, "/api/sections/"+rec.ID+"/"+sec.ID, token, nil)
	if resp.Code != http.StatusNoContent {
		t.Fatalf("delete section: expected 204, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodGet, "/api/resumes/"+rec.ID, token, nil)
	var after Record
	if err := json.NewDecoder(resp.Body).Decode(&after); err != nil {
		t.Fatalf("decode resume: %v", err)
	}
	if len(after.Content.Sections) != 0 || len(after.Content.SectionOrder) != 0 {
		t.Fatalf("section not fully removed: %+v", after.Content)
	}
}

func TestReorderSectionsViaAPI(t *testing.T) {
	r, token := setupResumesRouter(t, nil)
	rec := createViaAPI(t, r, token, "Editor Flow")
	first := addSectionViaAPI(t, r, token, rec.ID, "work")
	second := addSectionViaAPI(t, r, token, rec.ID, "education")

	orderPath := "/api/resumes/" + rec.ID + "/sections/order"
	resp := doJSON(t, r, http.MethodPut, orderPath, token,
		map[string]any{"sectionOrder": []string{second.ID, first.ID}})
	if resp.Code != http.StatusNoContent {
		t.Fatalf("reorder: expected 204, got %d (%s)", resp.Code, resp.Body.String())
	}

	resp = doJSON(t, r, http.MethodGet, "/api/resumes/"+rec.ID+"/sections", token, nil)
	var listed []model.Section
	if err := json.NewDecoder(resp.Body).Decode(&listed); err != nil {
		t.Fatalf("decode sections: %v", err)
	}
	if len(listed) != 2 || listed[0].ID != second.ID || listed[1].ID != first.ID {
		t.Fatalf("order not applied: %+v", listed)
	}

	resp = doJSON(t, r, http.MethodPut, orderPath, token,
		map[string]any{"sectionOrder": []string{second.ID}})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("partial order: expected 400, got %d", resp.Code)
	}
}

func TestSectionEndpointErrors(t *testing.T) {
	r, token := setupResumesRouter(t, nil)
	rec := createViaAPI(t, r, token, "Editor Flow")

	resp := doJSON(t, r, http.MethodPost, "/api/sections/"+rec.ID, token, map[string]any{"type": "hobbies"})
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("unknown type: expected 400, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodPut, "/api/sections/"+rec.ID+"/missing", token, map[string]any{"title": "X"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown section: expected 404, got %d", resp.Code)
	}

	resp = doJSON(t, r, http.MethodPost, "/api/sections/no-such-resume", token, map[string]any{"type": "work"})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown resume: expected 404, got %d", resp.Code)
	}

	sec := addSectionViaAPI(t, r, token, rec.ID, "work")
	resp = doJSON(t, r, http.MethodPatch, "/api/sections/"+rec.ID+"/"+sec.ID+"/items/missing/status", token,
		map[string]any{"enabled": true})
	if resp.Code != http.StatusNotFound {
		t.Fatalf("unknown item: expected 404, got %d", resp.Code)
	}
}

func TestSectionTypesCatalogRoutes(t *testing.T) {
	r, token := setupResumesRouter(t, nil)

	for _, path := range []string{"/api/sections", "/api/sections/types"} {
		resp := doJSON(t, r, http.MethodGet, path, token, nil)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, resp.Code)
		}
		var body struct {
			Data []struct {
				ID    string `json:"id"`
				Title string `json:"title"`
			} `json:"data"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			t.Fatalf("%s: decode catalog: %v", path, err)
		}
		if len(body.Data) != 16 {
			t.Fatalf("%s: expected 16 types, got %d", path, len(body.Data))
		}
	}
}
