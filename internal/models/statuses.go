package models

type UserRole string
type VerificationStatus string
type JobType string
type JobStatus string
type ApplicationStatus string
type PortfolioStatus string
type NotificationStatus string

const (
	UserRoleWorker  UserRole = "worker"
	UserRoleOwner   UserRole = "owner"
	UserRoleCompany UserRole = "company"
	UserRoleStudent UserRole = "student"
	UserRoleAdmin   UserRole = "admin"

	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"

	JobTypeJob        JobType = "job"
	JobTypeInternship JobType = "internship"

	JobStatusOpen   JobStatus = "open"
	JobStatusClosed JobStatus = "closed"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusAccepted ApplicationStatus = "accepted"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	PortfolioStatusPending  PortfolioStatus = "pending"
	PortfolioStatusApproved PortfolioStatus = "approved"
	PortfolioStatusRejected PortfolioStatus = "rejected"

	NotificationStatusSent   NotificationStatus = "sent"
	NotificationStatusFailed NotificationStatus = "failed"
)

// ValidJobTypes lists the allowed job types, in the order they are reported
// back to clients in validation messages.
var ValidJobTypes = []JobType{JobTypeJob, JobTypeInternship}

func (t JobType) Valid() bool {
	for _, v := range ValidJobTypes {
		if t == v {
			return true
		}
	}
	return false
}

func (s JobStatus) Valid() bool {
	return s == JobStatusOpen || s == JobStatusClosed
}

func (s VerificationStatus) Valid() bool {
	return s == VerificationPending || s == VerificationApproved || s == VerificationRejected
}

func (s ApplicationStatus) Valid() bool {
	return s == ApplicationStatusPending || s == ApplicationStatusAccepted || s == ApplicationStatusRejected
}

// CanPostJobs reports whether the role is allowed to create job postings.
func (r UserRole) CanPostJobs() bool {
	return r == UserRoleOwner || r == UserRoleCompany
}

// CanApply reports whether the role is allowed to apply to job postings.
func (r UserRole) CanApply() bool {
	return r == UserRoleWorker || r == UserRoleStudent
}
