package contribution

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"civicconnect/internal/domain"
)

type MockContributionRepository struct {
	mock.Mock
}

func (m *MockContributionRepository) Create(ctx context.Context, c *domain.Contribution) error {
	args := m.Called(ctx, c)
	if c != nil && args.Error(0) == nil {
		c.ID = 11
	}
	return args.Error(0)
}

func (m *MockContributionRepository) GetByID(ctx context.Context, id int64) (*domain.Contribution, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) ListByReport(ctx context.Context, reportID int64) ([]domain.Contribution, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) IncrementVote(ctx context.Context, id int64, up bool) (int, int, error) {
	args := m.Called(ctx, id, up)
	return args.Int(0), args.Int(1), args.Error(2)
}

type MockReportGate struct {
	mock.Mock
}

func (m *MockReportGate) GetByReportID(ctx context.Context, reportID string) (*domain.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Report), args.Error(1)
}

type MockMediaStore struct {
	mock.Mock
}

func (m *MockMediaStore) SaveMultipart(fh *multipart.FileHeader, limit int64) (string, error) {
	args := m.Called(fh, limit)
	return args.String(0), args.Error(1)
}

func (m *MockMediaStore) Delete(relPath string) error {
	args := m.Called(relPath)
	return args.Error(0)
}

func newTestService() (*Service, *MockContributionRepository, *MockReportGate, *MockMediaStore) {
	contribs := new(MockContributionRepository)
	reports := new(MockReportGate)
	mediaStore := new(MockMediaStore)
	return NewService(contribs, reports, mediaStore), contribs, reports, mediaStore
}

func files(n int) []*multipart.FileHeader {
	out := make([]*multipart.FileHeader, n)
	for i := range out {
		out[i] = &multipart.FileHeader{Filename: "evidence.jpg", Size: 1024}
	}
	return out
}

func TestCreate_Success(t *testing.T) {
	svc, contribs, reports, mediaStore := newTestService()

	reports.On("GetByReportID", mock.Anything, "R1-abc").Return(&domain.Report{ID: 3}, nil)
	mediaStore.On("SaveMultipart", mock.Anything, mock.Anything).Return("/uploads/e.jpg", nil).Twice()
	contribs.On("Create", mock.Anything, mock.Anything).Return(nil)

	contrib, err := svc.Create(context.Background(), 9, "R1-abc", CreateRequest{
		Title:       "Second angle of the pothole",
		Description: "Photo taken from the other side of the street.",
	}, files(2))
	require.NoError(t, err)

	assert.Equal(t, int64(3), contrib.ReportID)
	assert.Equal(t, int64(9), contrib.ContributorID)
	assert.Equal(t, domain.ContributionPending, contrib.Status)
	assert.Len(t, contrib.Images, 2)
}

func TestCreate_RequiresImage(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 9, "R1-abc", CreateRequest{
		Title:       "No photo",
		Description: "Missing evidence.",
	}, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreate_TooManyImages(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 9, "R1-abc", CreateRequest{
		Title:       "Spam",
		Description: "Too many files.",
	}, files(6))
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreate_TitleTooLong(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, err := svc.Create(context.Background(), 9, "R1-abc", CreateRequest{
		Title:       strings.Repeat("x", 101),
		Description: "ok",
	}, files(1))
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestCreate_ReportMissing(t *testing.T) {
	svc, _, reports, mediaStore := newTestService()

	reports.On("GetByReportID", mock.Anything, "R1-gone").Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(context.Background(), 9, "R1-gone", CreateRequest{
		Title:       "Evidence",
		Description: "For a report that no longer exists.",
	}, files(1))
	assert.ErrorIs(t, err, ErrNotFound)
	mediaStore.AssertNotCalled(t, "SaveMultipart", mock.Anything, mock.Anything)
}

func TestCreate_PersistFailureCleansStoredFiles(t *testing.T) {
	svc, contribs, reports, mediaStore := newTestService()

	reports.On("GetByReportID", mock.Anything, "R1-abc").Return(&domain.Report{ID: 3}, nil)
	mediaStore.On("SaveMultipart", mock.Anything, mock.Anything).Return("/uploads/e.jpg", nil).Twice()
	mediaStore.On("Delete", "/uploads/e.jpg").Return(nil).Twice()
	contribs.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

	_, err := svc.Create(context.Background(), 9, "R1-abc", CreateRequest{
		Title:       "Evidence",
		Description: "Will fail to persist.",
	}, files(2))
	assert.ErrorIs(t, err, ErrPersistence)
	mediaStore.AssertExpectations(t)
}

func TestVote_InvalidDirection(t *testing.T) {
	svc, _, _, _ := newTestService()

	_, _, err := svc.Vote(context.Background(), 11, "sideways")
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

// Votes are anonymous tallies with no per-user tracking: the same caller
// voting twice counts twice. Known gap, kept to match the shipped behavior.
func TestVote_NoDedup(t *testing.T) {
	svc, contribs, _, _ := newTestService()

	contribs.On("IncrementVote", mock.Anything, int64(11), true).Return(1, 0, nil).Once()
	contribs.On("IncrementVote", mock.Anything, int64(11), true).Return(2, 0, nil).Once()

	up, _, err := svc.Vote(context.Background(), 11, "up")
	require.NoError(t, err)
	assert.Equal(t, 1, up)

	up, _, err = svc.Vote(context.Background(), 11, "up")
	require.NoError(t, err)
	assert.Equal(t, 2, up, "second vote from the same user still counts")
}

func TestVote_MissingContribution(t *testing.T) {
	svc, contribs, _, _ := newTestService()

	contribs.On("IncrementVote", mock.Anything, int64(99), false).Return(0, 0, gorm.ErrRecordNotFound)

	_, _, err := svc.Vote(context.Background(), 99, "down")
	assert.ErrorIs(t, err, ErrNotFound)
}
