package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/careerladder/backend/internal/model"
	"github.com/careerladder/backend/internal/repository"
	"k8s.io/klog/v2"
)

// versionLayout is the required format for template versions. Enforcing it
// at publish time keeps the catalog's "latest" ordering well defined:
// ISO dates order the same way as strings.
const versionLayout = "2006-01-02"

// ChecklistService is the read side of the template catalog plus the
// administrative publish operation. Templates are never edited in place;
// every content change is a new (name, version) row.
type ChecklistService struct {
	checklistRepo repository.ChecklistRepository
}

func NewChecklistService(checklistRepo repository.ChecklistRepository) *ChecklistService {
	return &ChecklistService{checklistRepo: checklistRepo}
}

// ChecklistPage is the pagination envelope for catalog listings.
type ChecklistPage struct {
	Checklists []model.Checklist `json:"checklists"`
	HasMore    bool              `json:"has_more"`
	Count      int64             `json:"count"`
}

// ChecklistItemInput describes one item of a version being published.
type ChecklistItemInput struct {
	DisplayText string `json:"display_text" yaml:"displayText"`
	DetailText  string `json:"detail_text" yaml:"detailText"`
	IsRequired  bool   `json:"is_required" yaml:"isRequired"`
	LinkText    string `json:"link_text" yaml:"linkText"`
	LinkURI     string `json:"link_uri" yaml:"linkUri"`
}

// GetLatestByName returns the greatest-version template for a name.
func (s *ChecklistService) GetLatestByName(name string) (*model.Checklist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: checklist name is empty", ErrInvalidInput)
	}
	checklist, err := s.checklistRepo.GetLatestByName(name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: checklist %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return checklist, nil
}

// GetByNameVersion returns one pinned historical template version.
func (s *ChecklistService) GetByNameVersion(name, version string) (*model.Checklist, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(version) == "" {
		return nil, fmt.Errorf("%w: checklist name and version are required", ErrInvalidInput)
	}
	checklist, err := s.checklistRepo.GetByNameVersion(name, version)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: checklist %q version %q", ErrNotFound, name, version)
	}
	if err != nil {
		return nil, err
	}
	return checklist, nil
}

func (s *ChecklistService) Get(id uint) (*model.Checklist, error) {
	checklist, err := s.checklistRepo.Get(id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: checklist %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return checklist, nil
}

// List returns a catalog page. Fetching one row past the requested page
// size determines has_more without a second count per page.
func (s *ChecklistService) List(skip, take int) (*ChecklistPage, error) {
	if skip < 0 || take <= 0 {
		return nil, fmt.Errorf("%w: skip must be >= 0 and take > 0", ErrInvalidInput)
	}
	checklists, err := s.checklistRepo.List(skip, take+1)
	if err != nil {
		return nil, err
	}
	count, err := s.checklistRepo.Count()
	if err != nil {
		return nil, err
	}
	hasMore := len(checklists) > take
	if hasMore {
		checklists = checklists[:take]
	}
	return &ChecklistPage{Checklists: checklists, HasMore: hasMore, Count: count}, nil
}

// Publish creates a new template version with its items. Existing versions
// are never modified; user instances bound to them stay intact.
func (s *ChecklistService) Publish(name, version string, items []ChecklistItemInput) (*model.Checklist, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: checklist name is empty", ErrInvalidInput)
	}
	if _, err := time.Parse(versionLayout, version); err != nil {
		return nil, fmt.Errorf("%w: version %q must be a %s date", ErrInvalidInput, version, versionLayout)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: checklist needs at least one item", ErrInvalidInput)
	}

	checklist := &model.Checklist{Name: name, Version: version}
	for i, item := range items {
		if strings.TrimSpace(item.DisplayText) == "" {
			return nil, fmt.Errorf("%w: item %d has empty display text", ErrInvalidInput, i)
		}
		checklist.ChecklistItems = append(checklist.ChecklistItems, model.ChecklistItem{
			DisplayIndex: i,
			DisplayText:  item.DisplayText,
			DetailText:   item.DetailText,
			IsRequired:   item.IsRequired,
			LinkText:     item.LinkText,
			LinkURI:      item.LinkURI,
		})
	}

	if err := s.checklistRepo.Create(checklist); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			return nil, fmt.Errorf("%w: checklist %q version %q already published", ErrInvalidInput, name, version)
		}
		return nil, err
	}
	klog.V(6).Infof("published checklist %q version %s with %d items", name, version, len(items))
	return checklist, nil
}
