package resumes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/sections"
)

// Section routes mirror the editor's per-section API: sections are addressed
// by resume ID plus section ID, items by section plus item ID.
func (h *Handler) registerSectionRoutes(rg *gin.RouterGroup) {
	sec := rg.Group("/sections")
	sec.POST("/:resumeId", h.addSection)
	sec.PUT("/:resumeId/:sectionId", h.updateSection)
	sec.DELETE("/:resumeId/:sectionId", h.deleteSection)
	sec.POST("/:resumeId/:sectionId/items", h.addSectionItem)
	sec.PUT("/:resumeId/:sectionId/items/:itemId", h.updateSectionItem)
	sec.DELETE("/:resumeId/:sectionId/items/:itemId", h.deleteSectionItem)
	sec.PATCH("/:resumeId/:sectionId/items/:itemId/status", h.setSectionItemStatus)
}

type addSectionRequest struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

type updateSectionRequest struct {
	Title   *string `json:"title"`
	Enabled *bool   `json:"enabled"`
}

type sectionOrderRequest struct {
	SectionOrder []string `json:"sectionOrder"`
}

type itemStatusRequest struct {
	Enabled *bool `json:"enabled"`
}

func (h *Handler) listSections(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	secs, err := h.Service.ListSections(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "failed to list sections")
		return
	}
	respond.OK(c, secs)
}

func (h *Handler) addSection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req addSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}
	if req.Type == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "section type is required", nil)
		return
	}

	section, err := h.Service.AddSection(c.Request.Context(), userID, c.Param("resumeId"), req.Type, req.Title)
	if err != nil {
		h.writeServiceError(c, err, "failed to add section")
		return
	}
	respond.JSON(c, http.StatusCreated, section)
}

func (h *Handler) updateSection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req updateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}

	section, err := h.Service.UpdateSection(c.Request.Context(), userID, c.Param("resumeId"), c.Param("sectionId"),
		sections.SectionPatch{Title: req.Title, Enabled: req.Enabled})
	if err != nil {
		h.writeServiceError(c, err, "failed to update section")
		return
	}
	respond.OK(c, section)
}

func (h *Handler) deleteSection(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteSection(c.Request.Context(), userID, c.Param("resumeId"), c.Param("sectionId")); err != nil {
		h.writeServiceError(c, err, "failed to delete section")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) reorderSections(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req sectionOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}

	if err := h.Service.ReorderSections(c.Request.Context(), userID, c.Param("id"), req.SectionOrder); err != nil {
		h.writeServiceError(c, err, "failed to reorder sections")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) addSectionItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	patch, ok := bindItemPatch(c)
	if !ok {
		return
	}

	item, err := h.Service.AddSectionItem(c.Request.Context(), userID, c.Param("resumeId"), c.Param("sectionId"), patch)
	if err != nil {
		h.writeServiceError(c, err, "failed to add item")
		return
	}
	respond.JSON(c, http.StatusCreated, item)
}

func (h *Handler) updateSectionItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	patch, ok := bindItemPatch(c)
	if !ok {
		return
	}

	item, err := h.Service.UpdateSectionItem(c.Request.Context(), userID, c.Param("resumeId"), c.Param("sectionId"),
		c.Param("itemId"), patch)
	if err != nil {
		h.writeServiceError(c, err, "failed to update item")
		return
	}
	respond.OK(c, item)
}

func (h *Handler) deleteSectionItem(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	err := h.Service.DeleteSectionItem(c.Request.Context(), userID, c.Param("resumeId"), c.Param("sectionId"),
		c.Param("itemId"))
	if err != nil {
		h.writeServiceError(c, err, "failed to delete item")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) setSectionItemStatus(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req itemStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Enabled == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "enabled is required", nil)
		return
	}

	item, err := h.Service.SetSectionItemEnabled(c.Request.Context(), userID, c.Param("resumeId"), c.Param("sectionId"),
		c.Param("itemId"), *req.Enabled)
	if err != nil {
		h.writeServiceError(c, err, "failed to update item")
		return
	}
	respond.OK(c, item)
}

func bindItemPatch(c *gin.Context) (map[string]any, bool) {
	patch := map[string]any{}
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&patch); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
			return nil, false
		}
	}
	return patch, true
}
