package admin

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"civicconnect/internal/domain"
	"civicconnect/internal/repository"
)

const maxPerPage = 100

type Service struct {
	reports       ReportAdminRepository
	contributions ContributionAdminRepository
	settings      SettingRepository
}

func NewService(reports ReportAdminRepository, contributions ContributionAdminRepository, settings SettingRepository) *Service {
	return &Service{reports: reports, contributions: contributions, settings: settings}
}

func (s *Service) ListReports(ctx context.Context, q ListReportsQuery) (*ReportPage, error) {
	if q.Status != "" && !domain.ReportStatus(q.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, q.Status)
	}
	page, perPage := clampPaging(q.Page, q.PerPage)

	reports, total, err := s.reports.List(ctx, repository.ListFilter{
		Status:     q.Status,
		Department: q.Department,
		Limit:      perPage,
		Offset:     (page - 1) * perPage,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	out := &ReportPage{
		Items:   make([]ReportItem, 0, len(reports)),
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}
	for i := range reports {
		out.Items = append(out.Items, toReportItem(&reports[i]))
	}
	return out, nil
}

// ChangeReportStatus applies one step of the triage lifecycle. Steps outside
// the transition table are rejected, including anything out of closed.
func (s *Service) ChangeReportStatus(ctx context.Context, reportID string, next string) (*domain.Report, error) {
	target := domain.ReportStatus(next)
	if !target.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, next)
	}

	rep, err := s.reports.GetByReportID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if !rep.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidState, rep.Status, target)
	}

	if err := s.reports.UpdateStatus(ctx, rep.ID, target); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	rep.Status = target
	return rep, nil
}

func (s *Service) ListContributions(ctx context.Context, q ListContributionsQuery) ([]domain.Contribution, error) {
	if q.Status != "" && !domain.ContributionStatus(q.Status).Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidRequest, q.Status)
	}
	page, perPage := clampPaging(q.Page, q.PerPage)

	contribs, err := s.contributions.ListByStatus(ctx, q.Status, perPage, (page-1)*perPage)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return contribs, nil
}

// ModerateContribution approves or rejects a pending contribution. The
// helpful flag only sticks on approval.
func (s *Service) ModerateContribution(ctx context.Context, id int64, req ModerateRequest) (*domain.Contribution, error) {
	status := domain.ContributionStatus(req.Status)
	if status != domain.ContributionApproved && status != domain.ContributionRejected {
		return nil, fmt.Errorf("%w: status must be approved or rejected", ErrInvalidRequest)
	}
	helpful := req.Helpful && status == domain.ContributionApproved

	contrib, err := s.contributions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if err := s.contributions.UpdateStatus(ctx, id, status, helpful); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	contrib.Status = status
	contrib.Helpful = helpful
	return contrib, nil
}

func (s *Service) GetSettings(ctx context.Context) (map[string]string, error) {
	settings, err := s.settings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	out := make(map[string]string, len(settings))
	for _, st := range settings {
		out[st.Key] = st.Value
	}
	return out, nil
}

// UpdateSetting writes one well-known key. Unknown keys are rejected so a
// typo cannot silently create a dead setting.
func (s *Service) UpdateSetting(ctx context.Context, key, value string) error {
	switch key {
	case domain.SettingDepartments:
	case domain.SettingUploadsEnabled:
		if value != "true" && value != "false" {
			return fmt.Errorf("%w: %s must be true or false", ErrInvalidRequest, key)
		}
	default:
		return fmt.Errorf("%w: unknown setting %q", ErrInvalidRequest, key)
	}

	if err := s.settings.Set(ctx, key, value); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func clampPaging(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 20
	}
	if perPage > maxPerPage {
		perPage = maxPerPage
	}
	return page, perPage
}
