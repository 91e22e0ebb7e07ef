package services

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"buildlink/internal/apperrors"
	"buildlink/internal/logger"
	"buildlink/internal/models"
	"buildlink/internal/repositories"
	"buildlink/internal/services/dto"
)

type ApplicationService interface {
	Apply(applicantID, jobID string) (*models.Application, error)
	UpdateStatus(actorID, applicationID string, status models.ApplicationStatus) (*models.Application, error)
	ListMine(applicantID string, page, pageSize int) (*dto.MyApplicationListResponse, error)
	ListForJob(actorID, jobID string, page, pageSize int) (*dto.ApplicantListResponse, error)
	ListMyPostings(ownerID string, page, pageSize int) (*dto.JobPostingListResponse, error)
}

type ApplicationServiceImpl struct {
	appRepo          repositories.ApplicationRepository
	jobRepo          repositories.JobRepository
	userRepo         repositories.UserRepository
	notificationRepo repositories.NotificationRepository
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notificationRepo repositories.NotificationRepository,
) ApplicationService {
	return &ApplicationServiceImpl{
		appRepo:          appRepo,
		jobRepo:          jobRepo,
		userRepo:         userRepo,
		notificationRepo: notificationRepo,
	}
}

// Apply submits an application to an open job. The job being open is checked
// before the applicant's role, so applying to a closed job fails with a state
// error for everyone. The duplicate check is the unique index on
// (job_id, applicant_id), not a read, so concurrent submissions cannot both
// win.
func (s *ApplicationServiceImpl) Apply(applicantID, jobID string) (*models.Application, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.Status != models.JobStatusOpen {
		return nil, apperrors.ErrJobNotOpen
	}

	applicant, err := s.userRepo.FindByID(applicantID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !applicant.Role.CanApply() {
		return nil, apperrors.ErrCannotApply
	}

	app := &models.Application{
		JobID:       jobID,
		ApplicantID: applicantID,
		Status:      models.ApplicationStatusPending,
	}
	if err := s.appRepo.Create(app); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateKey) {
			return nil, apperrors.ErrDuplicateApplication
		}
		return nil, apperrors.InternalError(err)
	}

	s.notify(job.PostedByID, fmt.Sprintf("%s applied to your job %q", applicant.FullName, job.Title), map[string]string{
		"application_id": app.ID,
		"job_id":         job.ID,
	})

	return app, nil
}

// UpdateStatus is the owner's accept/reject decision. It touches only the
// targeted application; sibling applications to the same job are unaffected.
// Ownership is checked before the status value, so a non-owner always gets
// the permission error. Re-asserting the current status still saves, which
// refreshes updated_at.
func (s *ApplicationServiceImpl) UpdateStatus(actorID, applicationID string, status models.ApplicationStatus) (*models.Application, error) {
	app, err := s.appRepo.FindByID(applicationID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrApplicationNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	if app.Job == nil || app.Job.PostedByID != actorID {
		return nil, apperrors.ErrNotJobOwner
	}

	if !status.Valid() {
		return nil, apperrors.NewValidationError("status must be one of: pending, accepted, rejected")
	}

	changed := app.Status != status
	app.Status = status
	if err := s.appRepo.Update(app); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if changed {
		s.notify(app.ApplicantID, fmt.Sprintf("Your application to %q is now %s", app.Job.Title, status), map[string]string{
			"application_id": app.ID,
			"job_id":         app.JobID,
		})
	}

	return app, nil
}

func (s *ApplicationServiceImpl) ListMine(applicantID string, page, pageSize int) (*dto.MyApplicationListResponse, error) {
	page, pageSize = repositories.ClampPage(page, pageSize)
	apps, total, err := s.appRepo.ListByApplicant(applicantID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	entries := make([]dto.MyApplicationEntry, 0, len(apps))
	for _, app := range apps {
		entry := dto.MyApplicationEntry{
			ID:        app.ID,
			Status:    app.Status,
			CreatedAt: app.CreatedAt,
		}
		if app.Job != nil {
			entry.JobTitle = app.Job.Title
			entry.JobLocation = app.Job.Location
			entry.JobType = app.Job.Type
			entry.JobStatus = app.Job.Status
		}
		entries = append(entries, entry)
	}
	return &dto.MyApplicationListResponse{
		Applications: entries,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

func (s *ApplicationServiceImpl) ListForJob(actorID, jobID string, page, pageSize int) (*dto.ApplicantListResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if job.PostedByID != actorID {
		return nil, apperrors.ErrNotJobOwner
	}

	page, pageSize = repositories.ClampPage(page, pageSize)
	apps, total, err := s.appRepo.ListByJob(jobID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	entries := make([]dto.ApplicantEntry, 0, len(apps))
	for _, app := range apps {
		entry := dto.ApplicantEntry{
			ID:        app.ID,
			Status:    app.Status,
			CreatedAt: app.CreatedAt,
		}
		if app.Applicant != nil {
			entry.ApplicantName = app.Applicant.FullName
			entry.ApplicantEmail = app.Applicant.Email
			entry.ApplicantPhone = app.Applicant.Phone
			entry.ApplicantRole = app.Applicant.Role
		}
		entries = append(entries, entry)
	}
	return &dto.ApplicantListResponse{
		Applications: entries,
		Total:        total,
		Page:         page,
		PageSize:     pageSize,
	}, nil
}

func (s *ApplicationServiceImpl) ListMyPostings(ownerID string, page, pageSize int) (*dto.JobPostingListResponse, error) {
	page, pageSize = repositories.ClampPage(page, pageSize)
	jobs, total, err := s.jobRepo.ListByOwnerWithCounts(ownerID, page, pageSize)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]dto.JobPostingSummary, 0, len(jobs))
	for _, job := range jobs {
		out = append(out, dto.JobPostingSummary{
			ID:                job.ID,
			Title:             job.Title,
			Location:          job.Location,
			Status:            job.Status,
			TotalApplications: job.TotalApplications,
		})
	}
	return &dto.JobPostingListResponse{
		Jobs:     out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// notify records an in-app notification. Failures are logged and swallowed;
// a notification must never fail the action it reports on.
func (s *ApplicationServiceImpl) notify(userID, message string, data map[string]string) {
	payload, err := json.Marshal(data)
	if err != nil {
		payload = nil
	}
	n := &models.Notification{
		UserID:  userID,
		Message: message,
		Status:  models.NotificationStatusSent,
		Data:    datatypes.JSON(payload),
	}
	if err := s.notificationRepo.Create(n); err != nil {
		logger.Error("failed to record notification", "user_id", userID, "error", err)
	}
}
