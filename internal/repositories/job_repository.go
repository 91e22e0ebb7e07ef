package repositories

import (
	"errors"
	"strings"

	"buildlink/internal/models"

	"gorm.io/gorm"
)

// JobSearchCriteria filters and pages the open-job listing.
type JobSearchCriteria struct {
	TradeID  string
	Location string
	Type     models.JobType
	Query    string // matched against title, description, location
	SortBy   string // "created_at" or "budget"
	SortDesc bool
	Page     int
	PageSize int
}

const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// ClampPage normalizes 1-based pagination inputs against the shared limits.
func ClampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return page, pageSize
}

// JobWithCount is a job annotated with its application count for the
// my-postings listing.
type JobWithCount struct {
	models.Job
	TotalApplications int64 `json:"total_applications"`
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	Update(job *models.Job) error
	// Delete removes the job and all applications referencing it in one
	// transaction.
	Delete(id string) error
	SearchOpen(criteria JobSearchCriteria) ([]models.Job, int64, error)
	ListByOwnerWithCounts(ownerID string, page, pageSize int) ([]JobWithCount, int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.Preload("PostedBy").Preload("Trade").First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	return r.db.Save(job).Error
}

func (r *JobRepositoryImpl) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", id).Delete(&models.Application{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Job{}, "id = ?", id).Error
	})
}

func (r *JobRepositoryImpl) SearchOpen(criteria JobSearchCriteria) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{}).Where("status = ?", models.JobStatusOpen)

	if criteria.TradeID != "" {
		query = query.Where("trade_id = ?", criteria.TradeID)
	}
	if criteria.Location != "" {
		query = query.Where("location = ?", criteria.Location)
	}
	if criteria.Type != "" {
		query = query.Where("type = ?", criteria.Type)
	}
	if q := strings.TrimSpace(criteria.Query); q != "" {
		like := "%" + q + "%"
		query = query.Where(
			"title ILIKE ? OR description ILIKE ? OR location ILIKE ?",
			like, like, like,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortBy := criteria.SortBy
	if sortBy != "created_at" && sortBy != "budget" {
		sortBy = "created_at"
	}
	order := sortBy
	if criteria.SortDesc {
		order += " DESC"
	}
	query = query.Order(order)

	page, pageSize := ClampPage(criteria.Page, criteria.PageSize)

	var jobs []models.Job
	err := query.Preload("PostedBy").Preload("Trade").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&jobs).Error
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

func (r *JobRepositoryImpl) ListByOwnerWithCounts(ownerID string, page, pageSize int) ([]JobWithCount, int64, error) {
	var total int64
	err := r.db.Model(&models.Job{}).
		Where("posted_by_id = ?", ownerID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	page, pageSize = ClampPage(page, pageSize)

	var results []JobWithCount
	err = r.db.Model(&models.Job{}).
		Select("jobs.*, COUNT(applications.id) AS total_applications").
		Joins("LEFT JOIN applications ON applications.job_id = jobs.id").
		Where("jobs.posted_by_id = ?", ownerID).
		Group("jobs.id").
		Order("jobs.created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&results).Error
	if err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
