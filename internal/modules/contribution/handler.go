package contribution

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"civicconnect/internal/modules/media"
	"civicconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	// :id is a report ID for the collection routes and a numeric contribution
	// ID for the vote route; gin requires one param name per segment.
	r.GET("/contribute/:id", h.ListByReport)
	r.POST("/contribute/:id", h.Create)
	r.POST("/contribute/:id/vote", h.Vote)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "multipart form required")
		return
	}
	files := form.File["images"]

	contrib, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), c.Param("id"), req, files)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, toResponse(contrib))
}

func (h *Handler) ListByReport(c *gin.Context) {
	contribs, err := h.service.ListByReport(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]Response, 0, len(contribs))
	for i := range contribs {
		items = append(items, toResponse(&contribs[i]))
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Vote(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid contribution ID")
		return
	}

	var req VoteRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid form data")
		return
	}

	up, down, err := h.service.Vote(c.Request.Context(), id, req.Vote)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"upvotes": up, "downvotes": down})
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, media.ErrInvalidMediaType):
		response.Error(c, http.StatusBadRequest, "INVALID_MEDIA_TYPE", "only jpeg, png and webp images are allowed")
	case errors.Is(err, media.ErrPayloadTooLarge):
		response.Error(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "image exceeds the size limit")
	case errors.Is(err, media.ErrEmptyFile):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "image is empty")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "not found")
	default:
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not process contribution")
	}
}
