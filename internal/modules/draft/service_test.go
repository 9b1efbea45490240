package draft

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"civicconnect/internal/domain"
)

// memStore is the in-memory Store used by tests (and by handler tests in the
// report module).
type memStore struct {
	mu     sync.Mutex
	drafts map[string]domain.Draft
}

func newMemStore() *memStore {
	return &memStore{drafts: make(map[string]domain.Draft)}
}

func (s *memStore) Put(_ context.Context, sessionID string, d domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = d
	return nil
}

func (s *memStore) Get(_ context.Context, sessionID string) (domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[sessionID]
	if !ok {
		return domain.Draft{}, ErrNoDraft
	}
	return d, nil
}

func (s *memStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, sessionID)
	return nil
}

type mockDeleter struct {
	mock.Mock
}

func (m *mockDeleter) Delete(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}

func TestStart_SupersedeDeletesPreviousMedia(t *testing.T) {
	store := newMemStore()
	deleter := new(mockDeleter)
	svc := NewService(store, deleter)
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx, "sess-1", domain.Draft{ImagePath: "/uploads/first.jpg"}))

	deleter.On("Delete", "/uploads/first.jpg").Return(nil).Once()
	require.NoError(t, svc.Start(ctx, "sess-1", domain.Draft{ImagePath: "/uploads/second.jpg"}))

	deleter.AssertExpectations(t)

	d, err := svc.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/second.jpg", d.ImagePath)
}

func TestStart_FirstDraftDeletesNothing(t *testing.T) {
	deleter := new(mockDeleter)
	svc := NewService(newMemStore(), deleter)

	require.NoError(t, svc.Start(context.Background(), "sess-1", domain.Draft{ImagePath: "/uploads/a.jpg"}))
	deleter.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestGet_NoDraft(t *testing.T) {
	svc := NewService(newMemStore(), new(mockDeleter))

	_, err := svc.Get(context.Background(), "sess-none")
	assert.ErrorIs(t, err, ErrNoDraft)
}

func TestClear_LeavesMediaAlone(t *testing.T) {
	store := newMemStore()
	deleter := new(mockDeleter)
	svc := NewService(store, deleter)
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx, "sess-1", domain.Draft{ImagePath: "/uploads/keep.jpg"}))
	require.NoError(t, svc.Clear(ctx, "sess-1"))

	_, err := svc.Get(ctx, "sess-1")
	assert.ErrorIs(t, err, ErrNoDraft)
	deleter.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestDrafts_SessionIsolation(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, new(mockDeleter))
	ctx := context.Background()

	require.NoError(t, svc.Start(ctx, "sess-a", domain.Draft{ImagePath: "/uploads/a.jpg"}))
	require.NoError(t, svc.Start(ctx, "sess-b", domain.Draft{ImagePath: "/uploads/b.jpg"}))

	a, err := svc.Get(ctx, "sess-a")
	require.NoError(t, err)
	b, err := svc.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.NotEqual(t, a.ImagePath, b.ImagePath)
}
