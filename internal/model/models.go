package model

import (
	"time"
)

// User is the owner of checklist progress. Authentication lives outside
// this service; the row exists for ownership and role checks.
type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Email     string    `json:"email" gorm:"size:255;uniqueIndex;not null"`
	Name      string    `json:"name" gorm:"size:255"`
	Role      string    `json:"role" gorm:"size:50;default:user"` // user, admin
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Checklist is an administrator-authored checklist template. Multiple rows
// may share a name; each row is one published version. Version strings are
// ISO dates so string ordering equals chronological ordering.
type Checklist struct {
	ID             uint            `json:"id" gorm:"primaryKey"`
	Name           string          `json:"name" gorm:"size:255;not null;index:idx_checklists_name_version,unique"`
	Version        string          `json:"version" gorm:"size:50;not null;index:idx_checklists_name_version,unique"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	ChecklistItems []ChecklistItem `json:"checklist_items,omitempty" gorm:"foreignKey:ChecklistID;constraint:OnDelete:CASCADE"`
}

// ChecklistItem is one entry of a template version. Items are not edited
// in place; content changes ship as a new Checklist version.
type ChecklistItem struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	ChecklistID  uint      `json:"checklist_id" gorm:"index;not null"`
	DisplayIndex int       `json:"display_index" gorm:"not null;default:0"`
	DisplayText  string    `json:"display_text" gorm:"size:2000;not null"`
	DetailText   string    `json:"detail_text" gorm:"size:2000"`
	IsRequired   bool      `json:"is_required" gorm:"default:true"`
	LinkText     string    `json:"link_text" gorm:"size:255"`
	LinkURI      string    `json:"link_uri" gorm:"size:500"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserChecklist is a user's personal clone of one template version.
// The (user_id, checklist_id) unique index is what makes concurrent lazy
// creation safe: the losing insert fails and is re-read instead.
type UserChecklist struct {
	ID                 uint                `json:"id" gorm:"primaryKey"`
	UserID             uint                `json:"user_id" gorm:"not null;index:idx_user_checklists_user_checklist,unique"`
	ChecklistID        uint                `json:"checklist_id" gorm:"not null;index:idx_user_checklists_user_checklist,unique"`
	IsComplete         bool                `json:"is_complete" gorm:"default:false"`
	ShareToken         string              `json:"share_token" gorm:"size:64;uniqueIndex"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	Checklist          *Checklist          `json:"checklist,omitempty" gorm:"foreignKey:ChecklistID"`
	UserChecklistItems []UserChecklistItem `json:"user_checklist_items,omitempty" gorm:"foreignKey:UserChecklistID;constraint:OnDelete:CASCADE"`
}

// UserChecklistItem tracks one user's completion of one template item.
// Display order always comes from the referenced ChecklistItem.
type UserChecklistItem struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	UserID          uint           `json:"user_id" gorm:"index;not null"`
	UserChecklistID uint           `json:"user_checklist_id" gorm:"index;not null"`
	ChecklistItemID uint           `json:"checklist_item_id" gorm:"index;not null"`
	IsComplete      bool           `json:"is_complete" gorm:"default:false"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	ChecklistItem   *ChecklistItem `json:"checklist_item,omitempty" gorm:"foreignKey:ChecklistItemID"`
}
