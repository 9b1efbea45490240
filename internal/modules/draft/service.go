package draft

import (
	"context"

	"civicconnect/internal/domain"
)

type MediaDeleter interface {
	Delete(relPath string) error
}

// Service enforces the one-draft-per-session rule.
type Service struct {
	store Store
	media MediaDeleter
}

func NewService(store Store, media MediaDeleter) *Service {
	return &Service{store: store, media: media}
}

// Start replaces the session's draft. A superseded draft's backing media is
// deleted before the overwrite so re-uploading never leaks files.
func (s *Service) Start(ctx context.Context, sessionID string, d domain.Draft) error {
	if prev, err := s.store.Get(ctx, sessionID); err == nil && prev.ImagePath != d.ImagePath {
		if derr := s.media.Delete(prev.ImagePath); derr != nil {
			return derr
		}
	}
	return s.store.Put(ctx, sessionID, d)
}

func (s *Service) Get(ctx context.Context, sessionID string) (domain.Draft, error) {
	return s.store.Get(ctx, sessionID)
}

// Clear drops the draft reference only. The media file stays: a successful
// commit owns it now, and abandonment cleanup is the caller's call.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.store.Clear(ctx, sessionID)
}
