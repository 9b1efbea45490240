package geo

import (
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"civicconnect/internal/pkg/response"
)

const (
	defaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "CivicConnect/1.0"
)

// Handler proxies reverse geocoding to Nominatim so the browser never hits
// it cross-origin. Nominatim requires an identifying User-Agent.
type Handler struct {
	baseURL string
	client  *http.Client
}

func NewHandler(baseURL string) *Handler {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Handler{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reverse", h.Reverse)
}

func (h *Handler) Reverse(c *gin.Context) {
	lat := c.Query("lat")
	lon := c.Query("lon")
	if lat == "" || lon == "" {
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "latitude and longitude are required")
		return
	}

	q := url.Values{
		"format":         {"jsonv2"},
		"lat":            {lat},
		"lon":            {lon},
		"addressdetails": {"1"},
	}

	req, err := http.NewRequestWithContext(c.Request.Context(), http.MethodGet, h.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "GEOCODING_FAILED", "failed to fetch location data")
		return
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := h.client.Do(req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "GEOCODING_FAILED", "failed to fetch location data")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		response.Error(c, http.StatusInternalServerError, "GEOCODING_FAILED", "failed to fetch location data")
		return
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "GEOCODING_FAILED", "failed to fetch location data")
		return
	}
	c.Data(http.StatusOK, "application/json", body)
}
