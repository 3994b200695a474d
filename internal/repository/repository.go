package repository

import (
	"errors"

	"github.com/careerladder/backend/internal/model"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict is returned when an insert loses against an existing row
// protected by a uniqueness constraint. Callers treat it as "already
// exists, re-fetch", never as a hard failure.
var ErrConflict = errors.New("record already exists")

type ChecklistRepository interface {
	Create(checklist *model.Checklist) error
	Get(id uint) (*model.Checklist, error)
	GetLatestByName(name string) (*model.Checklist, error)
	GetByNameVersion(name, version string) (*model.Checklist, error)
	List(skip, take int) ([]model.Checklist, error)
	Count() (int64, error)
}

type UserChecklistRepository interface {
	CreateWithItems(userChecklist *model.UserChecklist, templateItems []model.ChecklistItem) error
	Get(id uint) (*model.UserChecklist, error)
	GetByUserAndChecklist(userID, checklistID uint) (*model.UserChecklist, error)
	ListByUserAndName(userID uint, name string) ([]model.UserChecklist, error)
	GetByShareToken(token string) (*model.UserChecklist, error)
	SetComplete(id uint, isComplete bool) error
	GetItem(id uint) (*model.UserChecklistItem, error)
	SetItemComplete(id uint, isComplete bool) error
	CountIncompleteItems(userChecklistID uint) (int64, error)
}
