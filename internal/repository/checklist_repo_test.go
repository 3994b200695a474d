package repository

import (
	"errors"
	"testing"

	"github.com/careerladder/backend/internal/model"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db error: %v", err)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.Checklist{},
		&model.ChecklistItem{},
		&model.UserChecklist{},
		&model.UserChecklistItem{},
	); err != nil {
		t.Fatalf("migrate error: %v", err)
	}
	return db
}

func seedChecklist(t *testing.T, repo ChecklistRepository, name, version string, itemTexts ...string) *model.Checklist {
	t.Helper()
	checklist := &model.Checklist{Name: name, Version: version}
	for i, text := range itemTexts {
		checklist.ChecklistItems = append(checklist.ChecklistItems, model.ChecklistItem{
			DisplayIndex: i,
			DisplayText:  text,
			IsRequired:   true,
		})
	}
	if err := repo.Create(checklist); err != nil {
		t.Fatalf("create checklist error: %v", err)
	}
	return checklist
}

func TestChecklistRepositoryGetLatestByName(t *testing.T) {
	repo := NewChecklistRepository(newTestDB(t))

	seedChecklist(t, repo, "Programming Job Checklist", "2024-01-01", "A", "B", "C")
	newest := seedChecklist(t, repo, "Programming Job Checklist", "2024-06-01", "A", "B", "C", "D")
	seedChecklist(t, repo, "Leetcode 75", "2025-01-01", "Two Sum")

	got, err := repo.GetLatestByName("Programming Job Checklist")
	if err != nil {
		t.Fatalf("GetLatestByName error: %v", err)
	}
	if got.ID != newest.ID {
		t.Fatalf("expected checklist %d, got %d", newest.ID, got.ID)
	}
	if got.Version != "2024-06-01" {
		t.Fatalf("unexpected version: %s", got.Version)
	}
	if len(got.ChecklistItems) != 4 {
		t.Fatalf("expected 4 items, got %d", len(got.ChecklistItems))
	}
	for i, item := range got.ChecklistItems {
		if item.DisplayIndex != i {
			t.Fatalf("items out of order at %d: %+v", i, item)
		}
	}
}

func TestChecklistRepositoryGetLatestByNameNotFound(t *testing.T) {
	repo := NewChecklistRepository(newTestDB(t))

	if _, err := repo.GetLatestByName("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChecklistRepositoryGetByNameVersion(t *testing.T) {
	repo := NewChecklistRepository(newTestDB(t))

	oldVersion := seedChecklist(t, repo, "Programming Job Checklist", "2024-01-01", "A", "B")
	seedChecklist(t, repo, "Programming Job Checklist", "2024-06-01", "A", "B", "C")

	got, err := repo.GetByNameVersion("Programming Job Checklist", "2024-01-01")
	if err != nil {
		t.Fatalf("GetByNameVersion error: %v", err)
	}
	if got.ID != oldVersion.ID {
		t.Fatalf("expected checklist %d, got %d", oldVersion.ID, got.ID)
	}

	if _, err := repo.GetByNameVersion("Programming Job Checklist", "2023-01-01"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestChecklistRepositoryCreateDuplicateVersion(t *testing.T) {
	repo := NewChecklistRepository(newTestDB(t))

	seedChecklist(t, repo, "Programming Job Checklist", "2024-01-01", "A")

	duplicate := &model.Checklist{Name: "Programming Job Checklist", Version: "2024-01-01"}
	if err := repo.Create(duplicate); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestChecklistRepositoryListPagination(t *testing.T) {
	repo := NewChecklistRepository(newTestDB(t))

	seedChecklist(t, repo, "A", "2024-01-01", "x")
	seedChecklist(t, repo, "B", "2024-01-01", "x")
	seedChecklist(t, repo, "C", "2024-01-01", "x")

	page, err := repo.List(1, 2)
	if err != nil {
		t.Fatalf("List error: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("expected 2 checklists, got %d", len(page))
	}
	if page[0].Name != "B" || page[1].Name != "C" {
		t.Fatalf("unexpected page order: %s, %s", page[0].Name, page[1].Name)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count error: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected count 3, got %d", count)
	}
}
