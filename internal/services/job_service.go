package services

import (
	"fmt"
	"strings"

	"buildlink/internal/apperrors"
	"buildlink/internal/models"
	"buildlink/internal/repositories"
	"buildlink/internal/services/dto"
)

type JobService interface {
	CreateJob(posterID string, req *dto.CreateJobRequest) (*dto.JobResponse, error)
	GetJob(jobID string) (*dto.JobResponse, error)
	UpdateJob(actorID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error)
	DeleteJob(actorID, jobID string) error
	ListOpenJobs(req *dto.JobSearchRequest) (*dto.JobListResponse, error)
}

type JobServiceImpl struct {
	jobRepo   repositories.JobRepository
	tradeRepo repositories.TradeRepository
	userRepo  repositories.UserRepository
}

func NewJobService(
	jobRepo repositories.JobRepository,
	tradeRepo repositories.TradeRepository,
	userRepo repositories.UserRepository,
) JobService {
	return &JobServiceImpl{
		jobRepo:   jobRepo,
		tradeRepo: tradeRepo,
		userRepo:  userRepo,
	}
}

func (s *JobServiceImpl) CreateJob(posterID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	poster, err := s.userRepo.FindByID(posterID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !poster.Role.CanPostJobs() {
		return nil, apperrors.ErrCannotPostJob
	}

	if err := validateJobFields(req.Title, req.Budget, req.Type); err != nil {
		return nil, err
	}

	if req.TradeID != nil {
		if _, err := s.tradeRepo.FindByID(*req.TradeID); err != nil {
			if apperrors.Is(err, repositories.ErrTradeNotFound) {
				return nil, apperrors.ErrTradeNotFound
			}
			return nil, apperrors.InternalError(err)
		}
	}

	job := &models.Job{
		PostedByID:  posterID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Location:    req.Location,
		Type:        req.Type,
		TradeID:     req.TradeID,
		Budget:      req.Budget,
		Status:      models.JobStatusOpen,
	}

	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	// Reload with relations so the response carries trade and poster names.
	created, err := s.jobRepo.FindByID(job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewJobResponse(created)
	return &resp, nil
}

func (s *JobServiceImpl) GetJob(jobID string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewJobResponse(job)
	return &resp, nil
}

func (s *JobServiceImpl) UpdateJob(actorID, jobID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
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

	if req.Title != nil {
		job.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.Location != nil {
		job.Location = *req.Location
	}
	if req.Type != nil {
		job.Type = *req.Type
	}
	if req.Budget != nil {
		job.Budget = req.Budget
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, apperrors.NewValidationError("status must be one of: open, closed")
		}
		job.Status = *req.Status
	}
	if req.TradeID != nil {
		if *req.TradeID == "" {
			job.TradeID = nil
			job.Trade = nil
		} else {
			trade, err := s.tradeRepo.FindByID(*req.TradeID)
			if err != nil {
				if apperrors.Is(err, repositories.ErrTradeNotFound) {
					return nil, apperrors.ErrTradeNotFound
				}
				return nil, apperrors.InternalError(err)
			}
			job.TradeID = &trade.ID
			job.Trade = trade
		}
	}

	// Partial updates still pass through the full field validation.
	if err := validateJobFields(job.Title, job.Budget, job.Type); err != nil {
		return nil, err
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.jobRepo.FindByID(job.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.NewJobResponse(updated)
	return &resp, nil
}

func (s *JobServiceImpl) DeleteJob(actorID, jobID string) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrJobNotFound) {
			return apperrors.ErrJobNotFound
		}
		return apperrors.InternalError(err)
	}
	if job.PostedByID != actorID {
		return apperrors.ErrNotJobOwner
	}

	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobServiceImpl) ListOpenJobs(req *dto.JobSearchRequest) (*dto.JobListResponse, error) {
	sortBy, sortDesc, err := parseOrdering(req.Ordering)
	if err != nil {
		return nil, err
	}

	if req.Type != "" && !models.JobType(req.Type).Valid() {
		return nil, apperrors.NewValidationError(invalidJobTypeMessage())
	}

	criteria := repositories.JobSearchCriteria{
		TradeID:  req.TradeID,
		Location: req.Location,
		Type:     models.JobType(req.Type),
		Query:    req.Search,
		SortBy:   sortBy,
		SortDesc: sortDesc,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	jobs, total, err := s.jobRepo.SearchOpen(criteria)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	page, pageSize := repositories.ClampPage(criteria.Page, criteria.PageSize)

	out := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		out = append(out, dto.NewJobResponse(&jobs[i]))
	}

	return &dto.JobListResponse{
		Jobs:     out,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// validateJobFields enforces the shared job field rules for create and
// update.
func validateJobFields(title string, budget *float64, jobType models.JobType) error {
	if len(strings.TrimSpace(title)) < 5 {
		return apperrors.NewValidationError("Title must be at least 5 characters long")
	}
	if budget != nil && *budget <= 0 {
		return apperrors.NewValidationError("Budget must be a positive number")
	}
	if !jobType.Valid() {
		return apperrors.NewValidationError(invalidJobTypeMessage())
	}
	return nil
}

func invalidJobTypeMessage() string {
	names := make([]string, len(models.ValidJobTypes))
	for i, t := range models.ValidJobTypes {
		names[i] = string(t)
	}
	return fmt.Sprintf("type must be one of: %s", strings.Join(names, ", "))
}

// parseOrdering turns the API ordering parameter ("-created_at", "budget")
// into a column and direction. Empty means newest first.
func parseOrdering(ordering string) (sortBy string, sortDesc bool, err error) {
	if ordering == "" {
		return "created_at", true, nil
	}
	field := ordering
	if strings.HasPrefix(field, "-") {
		sortDesc = true
		field = field[1:]
	}
	switch field {
	case "created_at", "budget":
		return field, sortDesc, nil
	default:
		return "", false, apperrors.NewValidationError("ordering must be one of: created_at, -created_at, budget, -budget")
	}
}
