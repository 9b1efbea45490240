package geo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGeoRouter(baseURL string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(baseURL).RegisterRoutes(router.Group("/"))
	return router
}

func TestReverse_ProxiesUpstreamResponse(t *testing.T) {
	var gotQuery map[string]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/reverse", r.URL.Path)
		gotQuery = map[string]string{
			"format":         r.URL.Query().Get("format"),
			"lat":            r.URL.Query().Get("lat"),
			"lon":            r.URL.Query().Get("lon"),
			"addressdetails": r.URL.Query().Get("addressdetails"),
			"user_agent":     r.Header.Get("User-Agent"),
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"display_name":"Abay avenue 12, Almaty"}`))
	}))
	defer upstream.Close()

	router := newGeoRouter(upstream.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reverse?lat=43.24&lon=76.95", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Abay avenue 12")
	assert.Equal(t, "jsonv2", gotQuery["format"])
	assert.Equal(t, "43.24", gotQuery["lat"])
	assert.Equal(t, "76.95", gotQuery["lon"])
	assert.Equal(t, "1", gotQuery["addressdetails"])
	assert.Equal(t, userAgent, gotQuery["user_agent"])
}

func TestReverse_MissingCoordinates(t *testing.T) {
	router := newGeoRouter("http://unused.invalid")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reverse?lat=43.24", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "VALIDATION_FAILED")
}

func TestReverse_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer upstream.Close()

	router := newGeoRouter(upstream.URL)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/reverse?lat=1&lon=2", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "GEOCODING_FAILED")
}
