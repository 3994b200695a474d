package repository

import (
	"errors"
	"sort"

	"github.com/careerladder/backend/internal/model"
	"gorm.io/gorm"
)

type userChecklistRepository struct {
	db *gorm.DB
}

// NewUserChecklistRepository creates the user checklist data repository.
func NewUserChecklistRepository(db *gorm.DB) UserChecklistRepository {
	return &userChecklistRepository{db: db}
}

// CreateWithItems inserts the instance and one item per template item as a
// single transaction, so a failed item insert never leaves a half-populated
// instance. A uniqueness violation on (user_id, checklist_id) surfaces as
// ErrConflict so the caller can re-read the winner's row.
func (r *userChecklistRepository) CreateWithItems(userChecklist *model.UserChecklist, templateItems []model.ChecklistItem) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(userChecklist).Error; err != nil {
			return err
		}
		if len(templateItems) == 0 {
			return nil
		}
		items := make([]model.UserChecklistItem, 0, len(templateItems))
		for _, templateItem := range templateItems {
			items = append(items, model.UserChecklistItem{
				UserID:          userChecklist.UserID,
				UserChecklistID: userChecklist.ID,
				ChecklistItemID: templateItem.ID,
				IsComplete:      false,
			})
		}
		return tx.Create(&items).Error
	})
	if err != nil {
		// The insert may have lost a race against a concurrent creation.
		// Checking for the existing row instead of parsing driver-specific
		// error codes keeps this portable across sqlite and mysql.
		var existing model.UserChecklist
		lookupErr := r.db.
			Where("user_id = ? AND checklist_id = ?", userChecklist.UserID, userChecklist.ChecklistID).
			First(&existing).Error
		if lookupErr == nil {
			return ErrConflict
		}
		return err
	}
	return nil
}

func (r *userChecklistRepository) preloaded() *gorm.DB {
	return r.db.
		Preload("Checklist").
		Preload("UserChecklistItems").
		Preload("UserChecklistItems.ChecklistItem")
}

// sortItemsByDisplayIndex orders user items by their template item's
// display index. Instance items never carry independent ordering.
func sortItemsByDisplayIndex(userChecklist *model.UserChecklist) {
	sort.SliceStable(userChecklist.UserChecklistItems, func(i, j int) bool {
		left, right := userChecklist.UserChecklistItems[i].ChecklistItem, userChecklist.UserChecklistItems[j].ChecklistItem
		if left == nil || right == nil {
			return left != nil
		}
		return left.DisplayIndex < right.DisplayIndex
	})
}

func (r *userChecklistRepository) Get(id uint) (*model.UserChecklist, error) {
	var userChecklist model.UserChecklist
	err := r.preloaded().First(&userChecklist, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sortItemsByDisplayIndex(&userChecklist)
	return &userChecklist, nil
}

// GetByUserAndChecklist returns the single instance bound to one template
// version, with items in display order.
func (r *userChecklistRepository) GetByUserAndChecklist(userID, checklistID uint) (*model.UserChecklist, error) {
	var userChecklist model.UserChecklist
	err := r.preloaded().
		Where("user_id = ? AND checklist_id = ?", userID, checklistID).
		First(&userChecklist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sortItemsByDisplayIndex(&userChecklist)
	return &userChecklist, nil
}

// ListByUserAndName returns every instance a user holds for a checklist
// name, newest version first.
func (r *userChecklistRepository) ListByUserAndName(userID uint, name string) ([]model.UserChecklist, error) {
	var userChecklists []model.UserChecklist
	err := r.preloaded().
		Joins("JOIN checklists ON checklists.id = user_checklists.checklist_id").
		Where("user_checklists.user_id = ? AND checklists.name = ?", userID, name).
		Order("checklists.version DESC").
		Find(&userChecklists).Error
	if err != nil {
		return nil, err
	}
	for i := range userChecklists {
		sortItemsByDisplayIndex(&userChecklists[i])
	}
	return userChecklists, nil
}

func (r *userChecklistRepository) GetByShareToken(token string) (*model.UserChecklist, error) {
	var userChecklist model.UserChecklist
	err := r.preloaded().
		Where("share_token = ?", token).
		First(&userChecklist).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	sortItemsByDisplayIndex(&userChecklist)
	return &userChecklist, nil
}

// SetComplete persists the derived instance-level flag. A column update is
// used so preloaded associations are never written back.
func (r *userChecklistRepository) SetComplete(id uint, isComplete bool) error {
	return r.db.Model(&model.UserChecklist{}).
		Where("id = ?", id).
		Update("is_complete", isComplete).Error
}

func (r *userChecklistRepository) GetItem(id uint) (*model.UserChecklistItem, error) {
	var item model.UserChecklistItem
	err := r.db.
		Preload("ChecklistItem").
		First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *userChecklistRepository) SetItemComplete(id uint, isComplete bool) error {
	return r.db.Model(&model.UserChecklistItem{}).
		Where("id = ?", id).
		Update("is_complete", isComplete).Error
}

// CountIncompleteItems reads the live incomplete count for an instance.
// The parent flag is always recomputed from this, never tracked
// incrementally, so it cannot drift from the items.
func (r *userChecklistRepository) CountIncompleteItems(userChecklistID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.UserChecklistItem{}).
		Where("user_checklist_id = ? AND is_complete = ?", userChecklistID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
