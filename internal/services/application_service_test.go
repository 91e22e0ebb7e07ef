package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buildlink/internal/apperrors"
	"buildlink/internal/models"
	"buildlink/internal/services/dto"
)

func seedOpenJob(t *testing.T, store *fakeStore, ownerID string) *dto.JobResponse {
	t.Helper()
	job, err := store.jobService().CreateJob(ownerID, validJobRequest())
	require.NoError(t, err)
	return job
}

func seedApplicant(t *testing.T, store *fakeStore, n int) *models.User {
	t.Helper()
	user := &models.User{
		Email:              fmt.Sprintf("applicant%d@test.com", n),
		Phone:              fmt.Sprintf("+3000%04d", n),
		FullName:           fmt.Sprintf("Applicant %d", n),
		Role:               models.UserRoleWorker,
		PasswordHash:       "irrelevant",
		VerificationStatus: models.VerificationPending,
	}
	require.NoError(t, store.users.Create(user))
	return user
}

func TestApply_Success(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	app, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, app.Status)

	// The job owner gets notified.
	notifs, err := store.notifs.ListByUser(owner.ID)
	require.NoError(t, err)
	assert.Len(t, notifs, 1)
}

func TestApply_StudentCanApply(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	student := seedUser(store, models.UserRoleStudent)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	_, err := svc.Apply(student.ID, job.ID)
	assert.NoError(t, err)
}

func TestApply_RoleGate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	company := seedUser(store, models.UserRoleCompany)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	_, err := svc.Apply(company.ID, job.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrCannotApply))
}

func TestApply_ClosedJob_StateErrorBeatsRoleError(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	company := seedUser(store, models.UserRoleCompany)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)

	closed := models.JobStatusClosed
	_, err := store.jobService().UpdateJob(owner.ID, job.ID, &dto.UpdateJobRequest{Status: &closed})
	require.NoError(t, err)

	svc := store.applicationService()

	// Closed job fails with the state error for every applicant, including
	// ones whose role could not apply anyway.
	_, err = svc.Apply(worker.ID, job.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrJobNotOpen))

	_, err = svc.Apply(company.ID, job.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrJobNotOpen))
}

func TestApply_Duplicate(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	_, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)

	_, err = svc.Apply(worker.ID, job.ID)
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateApplication))
}

func TestApply_UnknownJob(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	worker := seedUser(store, models.UserRoleWorker)
	svc := store.applicationService()

	_, err := svc.Apply(worker.ID, "missing-job")
	assert.True(t, apperrors.Is(err, apperrors.ErrJobNotFound))
}

func TestUpdateStatus_OwnerOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	other := seedUser(store, models.UserRoleCompany)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	app, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)

	for _, status := range []models.ApplicationStatus{
		models.ApplicationStatusPending,
		models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected,
	} {
		_, err = svc.UpdateStatus(other.ID, app.ID, status)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotJobOwner), "status %s", status)

		// The applicant cannot decide their own application either.
		_, err = svc.UpdateStatus(worker.ID, app.ID, status)
		assert.True(t, apperrors.Is(err, apperrors.ErrNotJobOwner), "status %s", status)
	}

	updated, err := svc.UpdateStatus(owner.ID, app.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusAccepted, updated.Status)

	// The applicant is notified of the decision.
	notifs, err := store.notifs.ListByUser(worker.ID)
	require.NoError(t, err)
	assert.Len(t, notifs, 1)
}

func TestUpdateStatus_InvalidValue(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	app, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(owner.ID, app.ID, "shortlisted")
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeValidationFailed, appErr.Code)
}

func TestUpdateStatus_DoesNotTouchSiblings(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	student := seedUser(store, models.UserRoleStudent)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	first, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)
	second, err := svc.Apply(student.ID, job.ID)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(owner.ID, first.ID, models.ApplicationStatusAccepted)
	require.NoError(t, err)

	sibling, err := store.apps.FindByID(second.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, sibling.Status)
}

func TestUpdateStatus_OwnershipCheckedBeforeStatusValue(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	other := seedUser(store, models.UserRoleCompany)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	app, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)

	// A non-owner gets the permission error even when the status value would
	// not validate.
	_, err = svc.UpdateStatus(other.ID, app.ID, "shortlisted")
	assert.True(t, apperrors.Is(err, apperrors.ErrNotJobOwner))
}

func TestUpdateStatus_SameStatusRefreshesTimestamp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	app, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(owner.ID, app.ID, models.ApplicationStatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusPending, updated.Status)
	assert.False(t, updated.UpdatedAt.IsZero())

	// No notification for a decision that did not change anything.
	notifs, err := store.notifs.ListByUser(worker.ID)
	require.NoError(t, err)
	assert.Empty(t, notifs)
}

func TestListMine(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	_, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)

	resp, err := svc.ListMine(worker.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, resp.Applications, 1)
	assert.Equal(t, job.Title, resp.Applications[0].JobTitle)
	assert.Equal(t, models.ApplicationStatusPending, resp.Applications[0].Status)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 10, resp.PageSize)
}

func TestListForJob_OwnerOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	other := seedUser(store, models.UserRoleCompany)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	_, err := svc.Apply(worker.ID, job.ID)
	require.NoError(t, err)

	_, err = svc.ListForJob(other.ID, job.ID, 1, 10)
	assert.True(t, apperrors.Is(err, apperrors.ErrNotJobOwner))

	resp, err := svc.ListForJob(owner.ID, job.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Applications, 1)
	assert.Equal(t, worker.FullName, resp.Applications[0].ApplicantName)
	assert.Equal(t, int64(1), resp.Total)
}

func TestListForJob_Paginates(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.applicationService()

	for i := 0; i < 12; i++ {
		applicant := seedApplicant(t, store, i)
		_, err := svc.Apply(applicant.ID, job.ID)
		require.NoError(t, err)
	}

	// Default page size is 10.
	first, err := svc.ListForJob(owner.ID, job.ID, 0, 0)
	require.NoError(t, err)
	assert.Len(t, first.Applications, 10)
	assert.Equal(t, int64(12), first.Total)
	assert.Equal(t, 10, first.PageSize)

	second, err := svc.ListForJob(owner.ID, job.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, second.Applications, 2)
	assert.Equal(t, int64(12), second.Total)
	assert.Equal(t, 2, second.Page)

	// Oversized page sizes are capped.
	capped, err := svc.ListForJob(owner.ID, job.ID, 1, 500)
	require.NoError(t, err)
	assert.Equal(t, 50, capped.PageSize)
}

func TestListMyPostings_Counts(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	student := seedUser(store, models.UserRoleStudent)
	svc := store.applicationService()

	first := seedOpenJob(t, store, owner.ID)
	second := seedOpenJob(t, store, owner.ID)

	_, err := svc.Apply(worker.ID, first.ID)
	require.NoError(t, err)
	_, err = svc.Apply(student.ID, first.ID)
	require.NoError(t, err)

	resp, err := svc.ListMyPostings(owner.ID, 1, 10)
	require.NoError(t, err)
	require.Len(t, resp.Jobs, 2)
	assert.Equal(t, int64(2), resp.Total)

	counts := map[string]int64{}
	for _, p := range resp.Jobs {
		counts[p.ID] = p.TotalApplications
	}
	assert.Equal(t, int64(2), counts[first.ID])
	assert.Equal(t, int64(0), counts[second.ID])
}

func TestListMyPostings_Paginates(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	svc := store.applicationService()

	for i := 0; i < 12; i++ {
		seedOpenJob(t, store, owner.ID)
	}

	first, err := svc.ListMyPostings(owner.ID, 1, 10)
	require.NoError(t, err)
	assert.Len(t, first.Jobs, 10)
	assert.Equal(t, int64(12), first.Total)

	second, err := svc.ListMyPostings(owner.ID, 2, 10)
	require.NoError(t, err)
	assert.Len(t, second.Jobs, 2)
}

func TestRateUser(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	owner := seedUser(store, models.UserRoleOwner)
	worker := seedUser(store, models.UserRoleWorker)
	job := seedOpenJob(t, store, owner.ID)
	svc := store.ratingService()

	_, err := svc.RateUser(owner.ID, &dto.RateUserRequest{
		JobID:       job.ID,
		RatedUserID: worker.ID,
		Rating:      0,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrInvalidRating))

	_, err = svc.RateUser(owner.ID, &dto.RateUserRequest{
		JobID:       job.ID,
		RatedUserID: worker.ID,
		Rating:      4,
	})
	require.NoError(t, err)

	rated, err := store.users.FindByID(worker.ID)
	require.NoError(t, err)
	require.NotNil(t, rated.AvgRating)
	assert.InDelta(t, 4.0, *rated.AvgRating, 0.001)

	_, err = svc.RateUser(owner.ID, &dto.RateUserRequest{
		JobID:       job.ID,
		RatedUserID: worker.ID,
		Rating:      5,
	})
	assert.True(t, apperrors.Is(err, apperrors.ErrDuplicateRating))
}
