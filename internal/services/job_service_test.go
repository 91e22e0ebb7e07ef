package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildlink/internal/apperrors"
	"buildlink/internal/models"
	"buildlink/internal/services/dto"
)

func validJobRequest() *dto.CreateJobRequest {
	budget := 1500.0
	return &dto.CreateJobRequest{
		Title:       "Bathroom renovation",
		Description: "Full retile and new plumbing",
		Location:    "Accra",
		Type:        models.JobTypeJob,
		Budget:      &budget,
	}
}

func TestCreateJob_Success(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	svc := store.jobService()

	job, err := svc.CreateJob(owner.ID, validJobRequest())
	require.NoError(t, err)

	assert.Equal(t, models.JobStatusOpen, job.Status)
	require.NotNil(t, job.PostedBy)
	assert.Equal(t, owner.ID, job.PostedBy.ID)
}

func TestCreateJob_RoleGate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	worker := seedUser(store, models.UserRoleWorker)
	svc := store.jobService()

	_, err := svc.CreateJob(worker.ID, validJobRequest())
	assert.True(t, apperrors.Is(err, apperrors.ErrCannotPostJob))
}

func TestCreateJob_Validation(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	svc := store.jobService()

	short := validJobRequest()
	short.Title = "Fix"
	_, err := svc.CreateJob(owner.ID, short)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 5 characters")

	negative := validJobRequest()
	badBudget := -10.0
	negative.Budget = &badBudget
	_, err = svc.CreateJob(owner.ID, negative)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive number")

	zero := validJobRequest()
	zeroBudget := 0.0
	zero.Budget = &zeroBudget
	_, err = svc.CreateJob(owner.ID, zero)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive number")

	// A nil budget is allowed.
	open := validJobRequest()
	open.Budget = nil
	_, err = svc.CreateJob(owner.ID, open)
	assert.NoError(t, err)

	badType := validJobRequest()
	badType.Type = "gig"
	_, err = svc.CreateJob(owner.ID, badType)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "job, internship")
}

func TestCreateJob_UnknownTrade(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	svc := store.jobService()

	req := validJobRequest()
	missing := "no-such-trade"
	req.TradeID = &missing
	_, err := svc.CreateJob(owner.ID, req)
	assert.True(t, apperrors.Is(err, apperrors.ErrTradeNotFound))
}

func TestUpdateJob_OwnerOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	company := seedUser(store, models.UserRoleCompany)
	svc := store.jobService()

	job, err := svc.CreateJob(owner.ID, validJobRequest())
	require.NoError(t, err)

	newTitle := "Bathroom renovation urgent"
	_, err = svc.UpdateJob(company.ID, job.ID, &dto.UpdateJobRequest{Title: &newTitle})
	assert.True(t, apperrors.Is(err, apperrors.ErrNotJobOwner))

	updated, err := svc.UpdateJob(owner.ID, job.ID, &dto.UpdateJobRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, newTitle, updated.Title)
	// The poster never changes on update.
	require.NotNil(t, updated.PostedBy)
	assert.Equal(t, owner.ID, updated.PostedBy.ID)
}

func TestUpdateJob_ValidatesMergedState(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	svc := store.jobService()

	job, err := svc.CreateJob(owner.ID, validJobRequest())
	require.NoError(t, err)

	short := "Fix"
	_, err = svc.UpdateJob(owner.ID, job.ID, &dto.UpdateJobRequest{Title: &short})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 5 characters")
}

func TestDeleteJob_OwnerOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	other := seedUser(store, models.UserRoleCompany)
	svc := store.jobService()

	job, err := svc.CreateJob(owner.ID, validJobRequest())
	require.NoError(t, err)

	err = svc.DeleteJob(other.ID, job.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotJobOwner))

	require.NoError(t, svc.DeleteJob(owner.ID, job.ID))

	_, err = svc.GetJob(job.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrJobNotFound))
}

func TestListOpenJobs_FiltersClosed(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	svc := store.jobService()

	first, err := svc.CreateJob(owner.ID, validJobRequest())
	require.NoError(t, err)

	second := validJobRequest()
	second.Title = "Warehouse roof repair"
	created, err := svc.CreateJob(owner.ID, second)
	require.NoError(t, err)

	closed := models.JobStatusClosed
	_, err = svc.UpdateJob(owner.ID, created.ID, &dto.UpdateJobRequest{Status: &closed})
	require.NoError(t, err)

	result, err := svc.ListOpenJobs(&dto.JobSearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, first.ID, result.Jobs[0].ID)
}

func TestListOpenJobs_PaginationDefaults(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	svc := store.jobService()

	for i := 0; i < 12; i++ {
		req := validJobRequest()
		req.Title = "Open position number " + string(rune('a'+i))
		_, err := svc.CreateJob(owner.ID, req)
		require.NoError(t, err)
	}

	result, err := svc.ListOpenJobs(&dto.JobSearchRequest{})
	require.NoError(t, err)
	assert.Equal(t, int64(12), result.Total)
	assert.Len(t, result.Jobs, 10)
	assert.Equal(t, 1, result.Page)
	assert.Equal(t, 10, result.PageSize)

	// Page size is capped.
	result, err = svc.ListOpenJobs(&dto.JobSearchRequest{PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 50, result.PageSize)
}

func TestListOpenJobs_InvalidOrdering(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	svc := store.jobService()

	_, err := svc.ListOpenJobs(&dto.JobSearchRequest{Ordering: "salary"})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestParseOrdering(t *testing.T) {
	t.Parallel()

	sortBy, desc, err := parseOrdering("")
	require.NoError(t, err)
	assert.Equal(t, "created_at", sortBy)
	assert.True(t, desc)

	sortBy, desc, err = parseOrdering("budget")
	require.NoError(t, err)
	assert.Equal(t, "budget", sortBy)
	assert.False(t, desc)

	sortBy, desc, err = parseOrdering("-budget")
	require.NoError(t, err)
	assert.Equal(t, "budget", sortBy)
	assert.True(t, desc)

	_, _, err = parseOrdering("title")
	assert.Error(t, err)
}
