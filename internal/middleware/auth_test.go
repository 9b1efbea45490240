package middleware

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicconnect/internal/domain"
	"civicconnect/internal/modules/auth"
	"civicconnect/internal/pkg/jwt"
	"civicconnect/internal/session"
)

type memSessionStore struct {
	sessions map[string]*session.Session
	next     int
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: map[string]*session.Session{}}
}

func (s *memSessionStore) Create(_ context.Context, userID int64, role domain.UserRole) (*session.Session, error) {
	s.next++
	sess := &session.Session{
		ID:        fmt.Sprintf("sess-%d", s.next),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now(),
	}
	s.sessions[sess.ID] = sess
	return sess, nil
}

func (s *memSessionStore) Get(_ context.Context, id string) (*session.Session, error) {
	sess, ok := s.sessions[id]
	if !ok {
		return nil, session.ErrNotFound
	}
	return sess, nil
}

func (s *memSessionStore) Destroy(_ context.Context, id string) error {
	delete(s.sessions, id)
	return nil
}

func newAuthRouter(t *testing.T) (*gin.Engine, *jwt.Service, *memSessionStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.New("test-secret-123", time.Hour)
	store := newMemSessionStore()

	router := gin.New()
	router.Use(SessionAuth(tokens, store))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetInt64("user_id"),
			"role":       c.GetString("role"),
			"session_id": c.GetString("session_id"),
		})
	})
	router.POST("/protected", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router, tokens, store
}

func TestSessionAuth_ValidSession(t *testing.T) {
	router, tokens, store := newAuthRouter(t)

	sess, err := store.Create(context.Background(), 42, domain.RoleUser)
	require.NoError(t, err)
	token, err := tokens.GenerateToken(sess.ID, 42, "user")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), sess.ID)
}

func TestSessionAuth_MissingCookieGetRedirects(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSessionAuth_MissingCookiePostGets403(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHENTICATED")
}

func TestSessionAuth_DestroyedSessionRejected(t *testing.T) {
	router, tokens, store := newAuthRouter(t)

	sess, err := store.Create(context.Background(), 42, domain.RoleUser)
	require.NoError(t, err)
	token, err := tokens.GenerateToken(sess.ID, 42, "user")
	require.NoError(t, err)
	require.NoError(t, store.Destroy(context.Background(), sess.ID))

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestSessionAuth_GarbageTokenRejected(t *testing.T) {
	router, _, _ := newAuthRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "not-a-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminOnly(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) { c.Set("role", "user") })
	router.GET("/admin", AdminOnly(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}
