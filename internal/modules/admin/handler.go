package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"civicconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects an already role-gated group.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports", h.ListReports)
	r.POST("/reports/:id/status", h.ChangeReportStatus)
	r.GET("/contributions", h.ListContributions)
	r.POST("/contributions/:id/status", h.ModerateContribution)
	r.GET("/settings", h.GetSettings)
	r.PUT("/settings", h.UpdateSettings)
}

func (h *Handler) ListReports(c *gin.Context) {
	var q ListReportsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid query parameters")
		return
	}

	page, err := h.service.ListReports(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

func (h *Handler) ChangeReportStatus(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "status is required")
		return
	}

	rep, err := h.service.ChangeReportStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toReportItem(rep))
}

func (h *Handler) ListContributions(c *gin.Context) {
	var q ListContributionsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid query parameters")
		return
	}

	contribs, err := h.service.ListContributions(c.Request.Context(), q)
	if err != nil {
		h.respondError(c, err)
		return
	}

	items := make([]ContributionItem, 0, len(contribs))
	for i := range contribs {
		items = append(items, toContributionItem(&contribs[i]))
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) ModerateContribution(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "invalid contribution ID")
		return
	}

	var req ModerateRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "status must be approved or rejected")
		return
	}

	contrib, err := h.service.ModerateContribution(c.Request.Context(), id, req)
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, toContributionItem(contrib))
}

func (h *Handler) GetSettings(c *gin.Context) {
	settings, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

func (h *Handler) UpdateSettings(c *gin.Context) {
	var body map[string]string
	if err := c.ShouldBindJSON(&body); err != nil || len(body) == 0 {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "expected a key/value object")
		return
	}

	for key, value := range body {
		if err := h.service.UpdateSetting(c.Request.Context(), key, value); err != nil {
			h.respondError(c, err)
			return
		}
	}

	settings, err := h.service.GetSettings(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, settings)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRequest):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", err.Error())
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "not found")
	case errors.Is(err, ErrInvalidState):
		response.Error(c, http.StatusConflict, "INVALID_STATE", err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not process request")
	}
}
