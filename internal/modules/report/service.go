package report

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"civicconnect/internal/domain"
	"civicconnect/internal/modules/media"
	"civicconnect/internal/pkg/ident"
	"civicconnect/internal/pkg/words"

	"gorm.io/gorm"
)

// Service owns the report submission workflow (direct and draft-backed) and
// the owner-side lifecycle rules. Every entry route funnels through the same
// validation and the same commit ordering:
//
//	resolve media -> validate -> persist -> clear draft
//
// Freshly ingested media is deleted on any later failure in the same call;
// draft-owned media survives a failed commit so the review step can retry.
type Service struct {
	reports ReportRepository
	media   MediaStore
	drafts  DraftManager
}

func NewService(reports ReportRepository, media MediaStore, drafts DraftManager) *Service {
	return &Service{reports: reports, media: media, drafts: drafts}
}

func validateMetadata(m Metadata) *FieldError {
	if !words.TitleValid(m.Title) {
		return &FieldError{Field: "title", Rule: "words_1_10"}
	}
	if !words.DescriptionValid(m.Description) {
		return &FieldError{Field: "description", Rule: "words_30_250"}
	}
	if !words.Present(m.Department) {
		return &FieldError{Field: "department", Rule: "required"}
	}
	if !words.Present(m.Address) {
		return &FieldError{Field: "address", Rule: "required"}
	}
	return nil
}

// submit is the single commit path. fresh marks media ingested in this call,
// which the service must remove again on any failure.
func (s *Service) submit(ctx context.Context, userID int64, imagePath string, fresh bool, m Metadata) (*domain.Report, error) {
	cleanup := func() {
		if fresh {
			if err := s.media.Delete(imagePath); err != nil {
				log.Printf("report: media cleanup failed path=%s err=%v", imagePath, err)
			}
		}
	}

	if ferr := validateMetadata(m); ferr != nil {
		cleanup()
		return nil, ferr
	}

	lat, ferr := parseCoord("latitude", m.Latitude)
	if ferr != nil {
		cleanup()
		return nil, ferr
	}
	lng, ferr := parseCoord("longitude", m.Longitude)
	if ferr != nil {
		cleanup()
		return nil, ferr
	}

	rep := &domain.Report{
		ReportID:     ident.ReportID(),
		UserID:       userID,
		Title:        strings.TrimSpace(m.Title),
		Description:  strings.TrimSpace(m.Description),
		Department:   strings.TrimSpace(m.Department),
		Address:      strings.TrimSpace(m.Address),
		LocationText: strings.TrimSpace(m.LocationText),
		Latitude:     lat,
		Longitude:    lng,
		ImagePath:    imagePath,
		Status:       domain.StatusOpen,
	}

	if err := s.reports.Create(ctx, rep); err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rep, nil
}

// CreateFromUpload handles POST /report/upload.
func (s *Service) CreateFromUpload(ctx context.Context, userID int64, fh *multipart.FileHeader, m Metadata) (*domain.Report, error) {
	imagePath, err := s.media.SaveMultipart(fh, media.MaxUploadSize)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, userID, imagePath, true, m)
}

// CreateFromCapture handles POST /report/capture (base64 camera capture).
func (s *Service) CreateFromCapture(ctx context.Context, userID int64, dataURI string, m Metadata) (*domain.Report, error) {
	imagePath, err := s.media.SaveBase64(dataURI, media.MaxUploadSize)
	if err != nil {
		return nil, err
	}
	return s.submit(ctx, userID, imagePath, true, m)
}

// StartDraftFromUpload handles POST /report/upload-temp.
func (s *Service) StartDraftFromUpload(ctx context.Context, sessionID string, fh *multipart.FileHeader, loc DraftLocation) error {
	imagePath, err := s.media.SaveMultipart(fh, media.MaxUploadSize)
	if err != nil {
		return err
	}
	return s.startDraft(ctx, sessionID, imagePath, loc)
}

// StartDraftFromCapture handles POST /report/capture-temp.
func (s *Service) StartDraftFromCapture(ctx context.Context, sessionID string, dataURI string, loc DraftLocation) error {
	imagePath, err := s.media.SaveBase64(dataURI, media.MaxUploadSize)
	if err != nil {
		return err
	}
	return s.startDraft(ctx, sessionID, imagePath, loc)
}

func (s *Service) startDraft(ctx context.Context, sessionID, imagePath string, loc DraftLocation) error {
	lat, ferr := parseCoord("latitude", loc.Latitude)
	if ferr != nil {
		s.discard(imagePath)
		return ferr
	}
	lng, ferr := parseCoord("longitude", loc.Longitude)
	if ferr != nil {
		s.discard(imagePath)
		return ferr
	}

	d := domain.Draft{
		ImagePath:    imagePath,
		Latitude:     lat,
		Longitude:    lng,
		Address:      strings.TrimSpace(loc.Address),
		LocationText: strings.TrimSpace(loc.LocationText),
	}
	if err := s.drafts.Start(ctx, sessionID, d); err != nil {
		s.discard(imagePath)
		return err
	}
	return nil
}

// Review returns the session's current draft for the review step.
func (s *Service) Review(ctx context.Context, sessionID string) (domain.Draft, error) {
	return s.drafts.Get(ctx, sessionID)
}

// CompleteDraft handles POST /report/upload-complete: the draft supplies the
// media (and location defaults), the posted metadata supplies the rest. The
// draft's media is NOT fresh here, so a failed commit keeps draft and file
// intact for another attempt.
func (s *Service) CompleteDraft(ctx context.Context, userID int64, sessionID string, m Metadata) (*domain.Report, error) {
	d, err := s.drafts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if m.Address == "" {
		m.Address = d.Address
	}
	if m.LocationText == "" {
		m.LocationText = d.LocationText
	}
	if m.Latitude == "" && d.Latitude != nil {
		m.Latitude = fmt.Sprintf("%v", *d.Latitude)
	}
	if m.Longitude == "" && d.Longitude != nil {
		m.Longitude = fmt.Sprintf("%v", *d.Longitude)
	}

	rep, err := s.submit(ctx, userID, d.ImagePath, false, m)
	if err != nil {
		return nil, err
	}

	// best effort: the commit already owns the media, a stale draft would
	// only point at it until the TTL runs out
	if err := s.drafts.Clear(ctx, sessionID); err != nil {
		log.Printf("report: clearing draft failed session=%s err=%v", sessionID, err)
	}
	return rep, nil
}

func (s *Service) Get(ctx context.Context, userID int64, reportID string) (*domain.Report, error) {
	rep, err := s.reports.GetOwned(ctx, reportID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rep, nil
}

func (s *Service) ListMine(ctx context.Context, userID int64, limit, offset int) ([]domain.Report, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.reports.ListByUser(ctx, userID, limit, offset)
}

// Edit updates an owned, still-open report. When the photo is replaced the
// old file is deleted only after the record update succeeds, so a partial
// failure never loses both files.
func (s *Service) Edit(ctx context.Context, userID int64, reportID string, m Metadata, newPhoto *multipart.FileHeader) (*domain.Report, error) {
	rep, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return nil, err
	}
	if !rep.Mutable() {
		return nil, ErrInvalidState
	}

	if ferr := validateMetadata(m); ferr != nil {
		return nil, ferr
	}
	lat, ferr := parseCoord("latitude", m.Latitude)
	if ferr != nil {
		return nil, ferr
	}
	lng, ferr := parseCoord("longitude", m.Longitude)
	if ferr != nil {
		return nil, ferr
	}

	oldPath := rep.ImagePath
	newPath := ""
	if newPhoto != nil {
		newPath, err = s.media.SaveMultipart(newPhoto, media.MaxUploadSize)
		if err != nil {
			return nil, err
		}
		rep.ImagePath = newPath
	}

	rep.Title = strings.TrimSpace(m.Title)
	rep.Description = strings.TrimSpace(m.Description)
	rep.Department = strings.TrimSpace(m.Department)
	rep.Address = strings.TrimSpace(m.Address)
	rep.LocationText = strings.TrimSpace(m.LocationText)
	rep.Latitude = lat
	rep.Longitude = lng

	if err := s.reports.Update(ctx, rep); err != nil {
		if newPath != "" {
			s.discard(newPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if newPath != "" && oldPath != newPath {
		if err := s.media.Delete(oldPath); err != nil {
			log.Printf("report: replaced media cleanup failed path=%s err=%v", oldPath, err)
		}
	}
	return rep, nil
}

// Delete removes an owned, still-open report and best-effort removes its
// media; a missing file does not fail the deletion.
func (s *Service) Delete(ctx context.Context, userID int64, reportID string) error {
	rep, err := s.Get(ctx, userID, reportID)
	if err != nil {
		return err
	}
	if !rep.Mutable() {
		return ErrInvalidState
	}

	if err := s.reports.Delete(ctx, rep.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.media.Delete(rep.ImagePath); err != nil {
		log.Printf("report: media cleanup failed path=%s err=%v", rep.ImagePath, err)
	}
	return nil
}

func (s *Service) discard(imagePath string) {
	if err := s.media.Delete(imagePath); err != nil {
		log.Printf("report: media cleanup failed path=%s err=%v", imagePath, err)
	}
}
