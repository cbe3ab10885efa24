package repositories

import (
	"errors"

	"kidhub_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrLeadNotFound      = errors.New("lead not found")
	ErrLeadAlreadyExists = errors.New("lead already exists for this activity")
	ErrLeadStatusRace    = errors.New("lead status changed concurrently")
)

type LeadRepository interface {
	Create(db *gorm.DB, lead *models.Lead) error
	FindByID(db *gorm.DB, id string) (*models.Lead, error)
	FindByParent(db *gorm.DB, parentID string) ([]models.Lead, error)
	FindBySchool(db *gorm.DB, schoolID string) ([]models.Lead, error)
	FindAll(db *gorm.DB) ([]models.Lead, error)

	// UpdateStatusCAS - compare-and-set: запись проходит только если текущий
	// статус входит в allowedFrom. Проигравший гонку запрос получает
	// ErrLeadStatusRace, а не молча перезаписывает чужой переход.
	UpdateStatusCAS(db *gorm.DB, id string, to models.LeadStatus, allowedFrom []models.LeadStatus) error
}

type LeadRepositoryImpl struct{}

func NewLeadRepository() LeadRepository {
	return &LeadRepositoryImpl{}
}

func (r *LeadRepositoryImpl) Create(db *gorm.DB, lead *models.Lead) error {
	var existing models.Lead
	err := db.Where("activity_id = ? AND parent_id = ?", lead.ActivityID, lead.ParentID).
		First(&existing).Error
	if err == nil {
		return ErrLeadAlreadyExists
	}

	if err := db.Create(lead).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrLeadAlreadyExists
		}
		return err
	}
	return nil
}

func (r *LeadRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Lead, error) {
	var lead models.Lead
	err := db.Preload("Activity").Preload("Activity.School").Preload("Parent").
		First(&lead, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLeadNotFound
		}
		return nil, err
	}
	return &lead, nil
}

func (r *LeadRepositoryImpl) FindByParent(db *gorm.DB, parentID string) ([]models.Lead, error) {
	var leads []models.Lead
	err := db.Preload("Activity").Preload("Activity.School").
		Where("parent_id = ?", parentID).
		Order("created_at ASC").
		Find(&leads).Error
	return leads, err
}

func (r *LeadRepositoryImpl) FindBySchool(db *gorm.DB, schoolID string) ([]models.Lead, error) {
	var leads []models.Lead
	err := db.Preload("Activity").Preload("Parent").
		Joins("JOIN activities ON activities.id = leads.activity_id").
		Where("activities.school_id = ?", schoolID).
		Order("leads.created_at ASC").
		Find(&leads).Error
	return leads, err
}

func (r *LeadRepositoryImpl) FindAll(db *gorm.DB) ([]models.Lead, error) {
	var leads []models.Lead
	err := db.Preload("Activity").Preload("Activity.School").Preload("Parent").
		Order("created_at ASC").
		Find(&leads).Error
	return leads, err
}

func (r *LeadRepositoryImpl) UpdateStatusCAS(db *gorm.DB, id string, to models.LeadStatus, allowedFrom []models.LeadStatus) error {
	if len(allowedFrom) == 0 {
		return ErrLeadStatusRace
	}

	result := db.Model(&models.Lead{}).
		Where("id = ? AND status IN ?", id, allowedFrom).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Либо лида нет, либо статус уже ушел вперед
		var lead models.Lead
		if err := db.First(&lead, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLeadNotFound
			}
			return err
		}
		return ErrLeadStatusRace
	}
	return nil
}
