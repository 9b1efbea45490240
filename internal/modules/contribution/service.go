package contribution

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"civicconnect/internal/domain"
	"civicconnect/internal/modules/media"

	"gorm.io/gorm"
)

const MaxImages = 5

type Service struct {
	contributions ContributionRepository
	reports       ReportGate
	media         MediaStore
}

func NewService(contributions ContributionRepository, reports ReportGate, media MediaStore) *Service {
	return &Service{contributions: contributions, reports: reports, media: media}
}

// Create attaches supplementary evidence to an existing report. Files are
// stored only after the target report is confirmed to exist; stored files
// are removed again if the record cannot be persisted.
func (s *Service) Create(ctx context.Context, contributorID int64, reportID string, req CreateRequest, files []*multipart.FileHeader) (*domain.Contribution, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" || len(title) > 100 {
		return nil, fmt.Errorf("%w: title", ErrInvalidRequest)
	}
	if description == "" || len(description) > 500 {
		return nil, fmt.Errorf("%w: description", ErrInvalidRequest)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", ErrInvalidRequest)
	}
	if len(files) > MaxImages {
		return nil, fmt.Errorf("%w: at most %d images", ErrInvalidRequest, MaxImages)
	}

	rep, err := s.reports.GetByReportID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	paths := make([]string, 0, len(files))
	cleanup := func() {
		for _, p := range paths {
			if derr := s.media.Delete(p); derr != nil {
				log.Printf("contribution: media cleanup failed path=%s err=%v", p, derr)
			}
		}
	}

	for _, fh := range files {
		p, err := s.media.SaveMultipart(fh, media.MaxContributionSize)
		if err != nil {
			cleanup()
			return nil, err
		}
		paths = append(paths, p)
	}

	contrib := &domain.Contribution{
		ReportID:      rep.ID,
		ContributorID: contributorID,
		Title:         title,
		Description:   description,
		Images:        paths,
		Status:        domain.ContributionPending,
	}

	if err := s.contributions.Create(ctx, contrib); err != nil {
		cleanup()
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return contrib, nil
}

func (s *Service) ListByReport(ctx context.Context, reportID string) ([]domain.Contribution, error) {
	rep, err := s.reports.GetByReportID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return s.contributions.ListByReport(ctx, rep.ID)
}

// Vote bumps a counter and returns the fresh counts. Votes are anonymous
// tallies: nothing stops a user voting twice, matching the shipped behavior.
func (s *Service) Vote(ctx context.Context, contributionID int64, vote string) (int, int, error) {
	if vote != "up" && vote != "down" {
		return 0, 0, fmt.Errorf("%w: vote must be up or down", ErrInvalidRequest)
	}

	up, down, err := s.contributions.IncrementVote(ctx, contributionID, vote == "up")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, 0, ErrNotFound
		}
		return 0, 0, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return up, down, nil
}
