package repository

import (
	"errors"

	"github.com/careerladder/backend/internal/model"
	"gorm.io/gorm"
)

type checklistRepository struct {
	db *gorm.DB
}

// NewChecklistRepository creates the checklist template data repository.
func NewChecklistRepository(db *gorm.DB) ChecklistRepository {
	return &checklistRepository{db: db}
}

// Create inserts a template together with its items in one transaction.
func (r *checklistRepository) Create(checklist *model.Checklist) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(checklist).Error
	})
	if err != nil {
		var existing model.Checklist
		lookupErr := r.db.
			Where("name = ? AND version = ?", checklist.Name, checklist.Version).
			First(&existing).Error
		if lookupErr == nil {
			return ErrConflict
		}
		return err
	}
	return nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("display_index ASC")
}

// Get returns one template with its items in display order.
func (r *checklistRepository) Get(id uint) (*model.Checklist, error) {
	var checklist model.Checklist
	err := r.db.
		Preload("ChecklistItems", orderedItems).
		First(&checklist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// GetLatestByName returns the template whose version compares greatest
// among all templates sharing the name. Versions are ISO dates, so the
// string ordering the database applies is also chronological.
func (r *checklistRepository) GetLatestByName(name string) (*model.Checklist, error) {
	var checklist model.Checklist
	err := r.db.
		Preload("ChecklistItems", orderedItems).
		Where("name = ?", name).
		Order("version DESC").
		First(&checklist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// GetByNameVersion returns one specific historical template version.
func (r *checklistRepository) GetByNameVersion(name, version string) (*model.Checklist, error) {
	var checklist model.Checklist
	err := r.db.
		Preload("ChecklistItems", orderedItems).
		Where("name = ? AND version = ?", name, version).
		First(&checklist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &checklist, nil
}

// List returns templates without items, ordered by id.
func (r *checklistRepository) List(skip, take int) ([]model.Checklist, error) {
	var checklists []model.Checklist
	err := r.db.
		Order("id ASC").
		Offset(skip).
		Limit(take).
		Find(&checklists).Error
	if err != nil {
		return nil, err
	}
	return checklists, nil
}

func (r *checklistRepository) Count() (int64, error) {
	var count int64
	if err := r.db.Model(&model.Checklist{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
