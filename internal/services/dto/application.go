package dto

import (
	"time"

	"buildlink/internal/models"
)

type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" validate:"required"`
}

// MyApplicationEntry is an application with its job denormalized for display.
type MyApplicationEntry struct {
	ID          string                   `json:"id"`
	JobTitle    string                   `json:"job_title"`
	JobLocation string                   `json:"job_location"`
	JobType     models.JobType           `json:"job_type"`
	JobStatus   models.JobStatus         `json:"job_status"`
	Status      models.ApplicationStatus `json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
}

// ApplicantEntry is what a job owner sees for each application to their job.
type ApplicantEntry struct {
	ID             string                   `json:"id"`
	ApplicantName  string                   `json:"applicant_name"`
	ApplicantEmail string                   `json:"applicant_email"`
	ApplicantPhone string                   `json:"applicant_phone"`
	ApplicantRole  models.UserRole          `json:"applicant_role"`
	Status         models.ApplicationStatus `json:"status"`
	CreatedAt      time.Time                `json:"created_at"`
}

// JobPostingSummary annotates an owner's job with its application count.
type JobPostingSummary struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Location          string           `json:"location"`
	Status            models.JobStatus `json:"status"`
	TotalApplications int64            `json:"total_applications"`
}

// ListPageRequest carries the pagination query parameters shared by the
// listing endpoints.
type ListPageRequest struct {
	Page     int `form:"page"`
	PageSize int `form:"page_size"`
}

type MyApplicationListResponse struct {
	Applications []MyApplicationEntry `json:"applications"`
	Total        int64                `json:"total"`
	Page         int                  `json:"page"`
	PageSize     int                  `json:"page_size"`
}

type ApplicantListResponse struct {
	Applications []ApplicantEntry `json:"applications"`
	Total        int64            `json:"total"`
	Page         int              `json:"page"`
	PageSize     int              `json:"page_size"`
}

type JobPostingListResponse struct {
	Jobs     []JobPostingSummary `json:"jobs"`
	Total    int64               `json:"total"`
	Page     int                 `json:"page"`
	PageSize int                 `json:"page_size"`
}

type RateUserRequest struct {
	JobID       string  `json:"job_id" validate:"required"`
	RatedUserID string  `json:"rated_user_id" validate:"required"`
	Rating      int     `json:"rating" validate:"required"`
	Comment     *string `json:"comment,omitempty"`
}
