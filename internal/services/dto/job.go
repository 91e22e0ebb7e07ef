package dto

import (
	"time"

	"buildlink/internal/models"
)

type CreateJobRequest struct {
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description"`
	Location    string         `json:"location" validate:"required"`
	Type        models.JobType `json:"type" validate:"required"`
	TradeID     *string        `json:"trade_id,omitempty"`
	Budget      *float64       `json:"budget,omitempty"`
}

// UpdateJobRequest is a partial update; posted_by is immutable and has no
// field here on purpose.
type UpdateJobRequest struct {
	Title       *string           `json:"title,omitempty"`
	Description *string           `json:"description,omitempty"`
	Location    *string           `json:"location,omitempty"`
	Type        *models.JobType   `json:"type,omitempty"`
	TradeID     *string           `json:"trade_id,omitempty"`
	Budget      *float64          `json:"budget,omitempty"`
	Status      *models.JobStatus `json:"status,omitempty"`
}

type JobSearchRequest struct {
	TradeID  string `form:"trade_id"`
	Location string `form:"location"`
	Type     string `form:"type"`
	Search   string `form:"search"`
	// "created_at", "-created_at", "budget" or "-budget"; default -created_at
	Ordering string `form:"ordering"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type PostedBySummary struct {
	ID       string          `json:"id"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
	Email    string          `json:"email"`
}

type JobResponse struct {
	ID          string           `json:"id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	Location    string           `json:"location"`
	Type        models.JobType   `json:"type"`
	Trade       string           `json:"trade,omitempty"`
	Budget      *float64         `json:"budget,omitempty"`
	Status      models.JobStatus `json:"status"`
	PostedBy    *PostedBySummary `json:"posted_by,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type JobListResponse struct {
	Jobs     []JobResponse `json:"jobs"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// NewJobResponse projects a job with its preloaded relations.
func NewJobResponse(job *models.Job) JobResponse {
	resp := JobResponse{
		ID:          job.ID,
		Title:       job.Title,
		Description: job.Description,
		Location:    job.Location,
		Type:        job.Type,
		Budget:      job.Budget,
		Status:      job.Status,
		CreatedAt:   job.CreatedAt,
	}
	if job.Trade != nil {
		resp.Trade = job.Trade.Name
	}
	if job.PostedBy != nil {
		resp.PostedBy = &PostedBySummary{
			ID:       job.PostedBy.ID,
			FullName: job.PostedBy.FullName,
			Role:     job.PostedBy.Role,
			Email:    job.PostedBy.Email,
		}
	}
	return resp
}
