package repositories

import (
	"errors"

	"buildlink/internal/models"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	// Create inserts an application. The (job_id, applicant_id) unique index
	// is the authoritative duplicate check; a violation comes back as
	// ErrDuplicateKey.
	Create(app *models.Application) error
	FindByID(id string) (*models.Application, error)
	Update(app *models.Application) error
	ListByApplicant(applicantID string, page, pageSize int) ([]models.Application, int64, error)
	ListByJob(jobID string, page, pageSize int) ([]models.Application, int64, error)
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return translateDuplicate(err)
	}
	return nil
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var app models.Application
	err := r.db.Preload("Job").Preload("Applicant").First(&app, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func (r *ApplicationRepositoryImpl) Update(app *models.Application) error {
	return r.db.Save(app).Error
}

func (r *ApplicationRepositoryImpl) ListByApplicant(applicantID string, page, pageSize int) ([]models.Application, int64, error) {
	var total int64
	err := r.db.Model(&models.Application{}).
		Where("applicant_id = ?", applicantID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	page, pageSize = ClampPage(page, pageSize)

	var apps []models.Application
	err = r.db.Preload("Job").
		Where("applicant_id = ?", applicantID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}

func (r *ApplicationRepositoryImpl) ListByJob(jobID string, page, pageSize int) ([]models.Application, int64, error) {
	var total int64
	err := r.db.Model(&models.Application{}).
		Where("job_id = ?", jobID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	page, pageSize = ClampPage(page, pageSize)

	var apps []models.Application
	err = r.db.Preload("Applicant").
		Where("job_id = ?", jobID).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}
	return apps, total, nil
}
