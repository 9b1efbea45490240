package report

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"civicconnect/internal/modules/draft"
	"civicconnect/internal/modules/media"
	"civicconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the report surface. The whole group sits behind the
// session middleware.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/report/upload", h.UploadForm)
	r.POST("/report/upload", h.CreateFromUpload)
	r.POST("/report/capture", h.CreateFromCapture)
	r.POST("/report/upload-temp", h.StartDraftFromUpload)
	r.POST("/report/capture-temp", h.StartDraftFromCapture)
	r.GET("/report/review", h.Review)
	r.POST("/report/upload-complete", h.CompleteDraft)

	r.GET("/reports", h.ListMine)
	r.GET("/reports/:id", h.GetMine)
	r.GET("/reports/:id/edit", h.EditForm)
	r.POST("/reports/:id/edit", h.Edit)
	r.POST("/reports/:id/delete", h.Delete)
}

// UploadForm is the entry point the review step redirects back to when no
// draft exists.
func (h *Handler) UploadForm(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"max_upload_bytes": media.MaxUploadSize,
		"allowed_types":    []string{"jpeg", "jpg", "png", "webp"},
	})
}

func (h *Handler) CreateFromUpload(c *gin.Context) {
	var m Metadata
	if err := c.ShouldBind(&m); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "photo is required")
		return
	}

	rep, err := h.service.CreateFromUpload(c.Request.Context(), c.GetInt64("user_id"), fh, m)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(rep))
}

func (h *Handler) CreateFromCapture(c *gin.Context) {
	var m Metadata
	if err := c.ShouldBind(&m); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	dataURI := c.PostForm("imageBase64")
	if dataURI == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "imageBase64 is required")
		return
	}

	rep, err := h.service.CreateFromCapture(c.Request.Context(), c.GetInt64("user_id"), dataURI, m)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(rep))
}

func (h *Handler) StartDraftFromUpload(c *gin.Context) {
	var loc DraftLocation
	if err := c.ShouldBind(&loc); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	fh, err := c.FormFile("photo")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "photo is required")
		return
	}

	if err := h.service.StartDraftFromUpload(c.Request.Context(), c.GetString("session_id"), fh, loc); err != nil {
		h.respondError(c, err)
		return
	}
	response.Redirect(c, "/report/review")
}

func (h *Handler) StartDraftFromCapture(c *gin.Context) {
	var loc DraftLocation
	if err := c.ShouldBind(&loc); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	dataURI := c.PostForm("imageBase64")
	if dataURI == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "imageBase64 is required")
		return
	}

	if err := h.service.StartDraftFromCapture(c.Request.Context(), c.GetString("session_id"), dataURI, loc); err != nil {
		h.respondError(c, err)
		return
	}
	response.Redirect(c, "/report/review")
}

func (h *Handler) Review(c *gin.Context) {
	d, err := h.service.Review(c.Request.Context(), c.GetString("session_id"))
	if err != nil {
		if errors.Is(err, draft.ErrNoDraft) {
			response.Redirect(c, "/report/upload")
			return
		}
		h.respondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, DraftResponse{
		ImagePath:    d.ImagePath,
		Address:      d.Address,
		LocationText: d.LocationText,
		Latitude:     d.Latitude,
		Longitude:    d.Longitude,
	})
}

func (h *Handler) CompleteDraft(c *gin.Context) {
	var m Metadata
	if err := c.ShouldBind(&m); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	rep, err := h.service.CompleteDraft(c.Request.Context(), c.GetInt64("user_id"), c.GetString("session_id"), m)
	if err != nil {
		if errors.Is(err, draft.ErrNoDraft) {
			response.Redirect(c, "/report/upload")
			return
		}
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(rep))
}

func (h *Handler) ListMine(c *gin.Context) {
	reports, err := h.service.ListMine(c.Request.Context(), c.GetInt64("user_id"), 20, 0)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]Response, 0, len(reports))
	for i := range reports {
		items = append(items, toResponse(&reports[i]))
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetMine(c *gin.Context) {
	rep, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(rep))
}

// EditForm returns the prefill data for the edit page, applying the same
// open-status gate as the edit itself.
func (h *Handler) EditForm(c *gin.Context) {
	rep, err := h.service.Get(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !rep.Mutable() {
		h.respondError(c, ErrInvalidState)
		return
	}
	response.Success(c, http.StatusOK, toResponse(rep))
}

func (h *Handler) Edit(c *gin.Context) {
	var m Metadata
	if err := c.ShouldBind(&m); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	// optional replacement photo
	fh, err := c.FormFile("photo")
	if err != nil {
		fh = nil
	}

	rep, err := h.service.Edit(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"), m, fh)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toResponse(rep))
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.GetInt64("user_id"), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	var ferr *FieldError
	switch {
	case errors.As(err, &ferr):
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", ferr.Error(),
			gin.H{"field": ferr.Field, "rule": ferr.Rule})
	case errors.Is(err, media.ErrInvalidMediaType):
		response.Error(c, http.StatusBadRequest, "INVALID_MEDIA_TYPE", "only jpeg, png and webp images are allowed")
	case errors.Is(err, media.ErrPayloadTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "image exceeds the size limit")
	case errors.Is(err, media.ErrMalformedEncoding):
		response.Error(c, http.StatusBadRequest, "MALFORMED_ENCODING", "imageBase64 is not a valid image data URI")
	case errors.Is(err, media.ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "photo is empty")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "report not found")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "report can no longer be modified")
	default:
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not process report")
	}
}
