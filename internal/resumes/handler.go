package resumes

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"resume-builder/internal/shared/server/middleware"
	"resume-builder/internal/shared/server/respond"
	"resume-builder/resume/model"
	"resume-builder/resume/sections"
)

// maxUploadBytes caps imported source documents at 10 MiB.
const maxUploadBytes = 10 << 20

// Handler exposes the resume REST endpoints.
type Handler struct {
	Service *Service
}

// NewHandler constructs a resumes Handler.
func NewHandler(service *Service) *Handler {
	return &Handler{Service: service}
}

// RegisterRoutes mounts the resume routes on the API group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/sections", h.listSectionTypes)
	rg.GET("/sections/types", h.listSectionTypes)
	h.registerSectionRoutes(rg)

	r := rg.Group("/resumes")
	r.GET("", h.list)
	r.POST("", h.create)
	r.POST("/generate", h.generate)
	r.POST("/import", h.importUpload)
	r.GET("/:id", h.get)
	r.PUT("/:id", h.update)
	r.DELETE("/:id", h.remove)
	r.POST("/:id/duplicate", h.duplicate)
	r.GET("/:id/export", h.export)
	r.GET("/:id/sections", h.listSections)
	r.PUT("/:id/sections/order", h.reorderSections)
}

type resumeRequest struct {
	Title   string         `json:"title"`
	Content *model.Content `json:"content"`
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

type listResponse struct {
	Success bool     `json:"success"`
	Data    []Record `json:"data"`
}

type generateResponse struct {
	Success bool   `json:"success"`
	Resume  Record `json:"resume"`
}

func (h *Handler) list(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	records, err := h.Service.List(c.Request.Context(), userID)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list resumes", nil)
		return
	}
	respond.OK(c, listResponse{Success: true, Data: records})
}

func (h *Handler) create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	req, ok := bindResumeRequest(c)
	if !ok {
		return
	}

	rec, err := h.Service.Create(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		h.writeServiceError(c, err, "failed to create resume")
		return
	}
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) get(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rec, err := h.Service.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "failed to load resume")
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	req, ok := bindResumeRequest(c)
	if !ok {
		return
	}
	if req.Content == nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "content is required", nil)
		return
	}

	rec, err := h.Service.Update(c.Request.Context(), userID, c.Param("id"), req.Title, *req.Content)
	if err != nil {
		h.writeServiceError(c, err, "failed to update resume")
		return
	}
	respond.OK(c, rec)
}

func (h *Handler) remove(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	if err := h.Service.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.writeServiceError(c, err, "failed to delete resume")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) duplicate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	rec, err := h.Service.Duplicate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "failed to duplicate resume")
		return
	}
	respond.JSON(c, http.StatusCreated, rec)
}

func (h *Handler) generate(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return
	}

	rec, err := h.Service.Generate(c.Request.Context(), userID, req.Prompt)
	if err != nil {
		h.writeServiceError(c, err, "failed to generate resume")
		return
	}
	respond.JSON(c, http.StatusCreated, generateResponse{Success: true, Resume: rec})
}

func (h *Handler) importUpload(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "multipart field 'file' is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the 10 MiB limit", nil)
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to read uploaded file", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to read uploaded file", nil)
		return
	}
	if len(data) > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "uploaded file exceeds the 10 MiB limit", nil)
		return
	}

	rec, err := h.Service.Import(c.Request.Context(), userID, fileHeader.Filename,
		fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		h.writeServiceError(c, err, "failed to import resume")
		return
	}
	respond.JSON(c, http.StatusCreated, generateResponse{Success: true, Resume: rec})
}

func (h *Handler) export(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	pdfBytes, fileName, err := h.Service.Export(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err, "failed to export resume")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}

func (h *Handler) listSectionTypes(c *gin.Context) {
	respond.OK(c, gin.H{"success": true, "data": sections.Types()})
}

// bindResumeRequest decodes a create/update body and schema-checks it when
// content is present.
func bindResumeRequest(c *gin.Context) (resumeRequest, bool) {
	var req resumeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
		return resumeRequest{}, false
	}
	if req.Content != nil {
		doc, err := json.Marshal(model.Resume{Title: firstNonEmpty(req.Title, "Untitled Resume"), Content: *req.Content})
		if err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_request", "request body must be valid JSON", nil)
			return resumeRequest{}, false
		}
		if err := model.ValidateJSON(doc); err != nil {
			respond.Error(c, http.StatusBadRequest, "invalid_content", err.Error(), nil)
			return resumeRequest{}, false
		}
	}
	return req, true
}

func (h *Handler) writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "resume not found", nil)
	case errors.Is(err, sections.ErrSectionNotFound), errors.Is(err, sections.ErrItemNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, sections.ErrInvalidSectionType), errors.Is(err, sections.ErrInvalidReorder):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "invalid_request", err.Error(), nil)
	case errors.Is(err, ErrInvalidContent):
		respond.Error(c, http.StatusUnprocessableEntity, "invalid_content", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func requireUser(c *gin.Context) (string, bool) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "authentication required", nil)
		return "", false
	}
	return userID, true
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
