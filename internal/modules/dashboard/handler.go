package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"civicconnect/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Summary)
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "PERSISTENCE_ERROR", "could not load dashboard")
		return
	}
	response.Success(c, http.StatusOK, summary)
}
