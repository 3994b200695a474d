package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/careerladder/backend/internal/eventbus"
	"github.com/careerladder/backend/internal/model"
	"github.com/careerladder/backend/internal/repository"
	"github.com/google/uuid"
	"k8s.io/klog/v2"
)

// UserChecklistService reconciles (user, checklist name) pairs onto exactly
// one active progress instance: lazily cloned from the latest template on
// first access, flagged stale when a newer version exists, and only ever
// migrated by an explicit upgrade. It never discards user progress.
type UserChecklistService struct {
	checklistRepo     repository.ChecklistRepository
	userChecklistRepo repository.UserChecklistRepository
	bus               *eventbus.Bus
}

func NewUserChecklistService(
	checklistRepo repository.ChecklistRepository,
	userChecklistRepo repository.UserChecklistRepository,
	bus *eventbus.Bus,
) *UserChecklistService {
	return &UserChecklistService{
		checklistRepo:     checklistRepo,
		userChecklistRepo: userChecklistRepo,
		bus:               bus,
	}
}

// UserChecklistResolution is the reconciler's answer for one checklist
// name: the instance the user is currently bound to, the id of the true
// latest template, and whether the two differ.
type UserChecklistResolution struct {
	UserChecklist     *model.UserChecklist `json:"user_checklist"`
	LatestChecklistID uint                 `json:"latest_checklist_id"`
	IsStale           bool                 `json:"is_stale"`
}

// GetOrCreateForName resolves the user's instance for a checklist name,
// creating one from the latest template version when none exists. An
// instance bound to an older version is returned as-is with IsStale set;
// upgrading is the user's explicit decision, never implicit.
func (s *UserChecklistService) GetOrCreateForName(ctx context.Context, userID uint, name string) (*UserChecklistResolution, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrForbidden)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: checklist name is empty", ErrInvalidInput)
	}

	latest, err := s.checklistRepo.GetLatestByName(name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: checklist %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	existing, err := s.userChecklistRepo.ListByUserAndName(userID, name)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		// The newest instance the user holds is the one they are actively
		// using, even when a newer template version has been published.
		current := &existing[0]
		return &UserChecklistResolution{
			UserChecklist:     current,
			LatestChecklistID: latest.ID,
			IsStale:           current.ChecklistID != latest.ID,
		}, nil
	}

	created, err := s.createInstance(ctx, userID, latest, eventbus.InstanceEventCreated)
	if err != nil {
		return nil, err
	}
	return &UserChecklistResolution{
		UserChecklist:     created,
		LatestChecklistID: latest.ID,
		IsStale:           false,
	}, nil
}

// createInstance clones a template version into a fresh instance for the
// user. A lost creation race is benign: the winner's row is re-read and
// returned instead.
func (s *UserChecklistService) createInstance(ctx context.Context, userID uint, checklist *model.Checklist, eventType eventbus.InstanceEventType) (*model.UserChecklist, error) {
	userChecklist := &model.UserChecklist{
		UserID:      userID,
		ChecklistID: checklist.ID,
		ShareToken:  uuid.NewString(),
	}
	err := s.userChecklistRepo.CreateWithItems(userChecklist, checklist.ChecklistItems)
	if err != nil && !errors.Is(err, repository.ErrConflict) {
		return nil, err
	}
	if errors.Is(err, repository.ErrConflict) {
		klog.V(6).Infof("concurrent instance creation for userID=%d checklistID=%d, re-reading", userID, checklist.ID)
	}

	created, err := s.userChecklistRepo.GetByUserAndChecklist(userID, checklist.ID)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, eventbus.InstanceEvent{
		Type:            eventType,
		UserID:          userID,
		UserChecklistID: created.ID,
		ChecklistID:     checklist.ID,
		ChecklistName:   checklist.Name,
		Version:         checklist.Version,
	})
	return created, nil
}

// ToggleItem sets one item's completion for its owner and recomputes the
// parent instance's derived flag from the live item rows.
func (s *UserChecklistService) ToggleItem(ctx context.Context, userID, itemID uint, isComplete bool) (*model.UserChecklistItem, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrForbidden)
	}
	item, err := s.userChecklistRepo.GetItem(itemID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: checklist item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}
	if item.UserID != userID {
		return nil, fmt.Errorf("%w: checklist item %d belongs to another user", ErrForbidden, itemID)
	}

	if err := s.userChecklistRepo.SetItemComplete(itemID, isComplete); err != nil {
		return nil, err
	}
	item.IsComplete = isComplete

	// Recompute after the write so the toggled value is part of the
	// aggregate, then persist the AND over all sibling items.
	incomplete, err := s.userChecklistRepo.CountIncompleteItems(item.UserChecklistID)
	if err != nil {
		return nil, err
	}
	allComplete := incomplete == 0
	if err := s.userChecklistRepo.SetComplete(item.UserChecklistID, allComplete); err != nil {
		return nil, err
	}

	if allComplete {
		event := eventbus.InstanceEvent{
			Type:            eventbus.InstanceEventCompleted,
			UserID:          userID,
			UserChecklistID: item.UserChecklistID,
		}
		if parent, parentErr := s.userChecklistRepo.Get(item.UserChecklistID); parentErr == nil && parent.Checklist != nil {
			event.ChecklistID = parent.ChecklistID
			event.ChecklistName = parent.Checklist.Name
			event.Version = parent.Checklist.Version
		}
		s.publish(ctx, event)
	}
	return item, nil
}

// UpgradeToLatest binds the user to a fresh instance of the latest template
// version. Prior instances and their completion history are retained for
// the audit view. Calling it while already on the latest version returns
// the existing instance.
func (s *UserChecklistService) UpgradeToLatest(ctx context.Context, userID uint, name string) (*model.UserChecklist, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrForbidden)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: checklist name is empty", ErrInvalidInput)
	}

	latest, err := s.checklistRepo.GetLatestByName(name)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: checklist %q", ErrNotFound, name)
	}
	if err != nil {
		return nil, err
	}

	current, err := s.userChecklistRepo.GetByUserAndChecklist(userID, latest.ID)
	if err == nil {
		return current, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	return s.createInstance(ctx, userID, latest, eventbus.InstanceEventUpgraded)
}

// History lists every instance the user holds for a checklist name, newest
// version first, with completion states intact.
func (s *UserChecklistService) History(userID uint, name string) ([]model.UserChecklist, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: missing user", ErrForbidden)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: checklist name is empty", ErrInvalidInput)
	}
	if _, err := s.checklistRepo.GetLatestByName(name); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: checklist %q", ErrNotFound, name)
		}
		return nil, err
	}
	return s.userChecklistRepo.ListByUserAndName(userID, name)
}

// GetByShareToken resolves the public, read-only view of one instance.
func (s *UserChecklistService) GetByShareToken(token string) (*model.UserChecklist, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("%w: share token is empty", ErrInvalidInput)
	}
	userChecklist, err := s.userChecklistRepo.GetByShareToken(token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: shared checklist", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return userChecklist, nil
}

func (s *UserChecklistService) publish(ctx context.Context, event eventbus.InstanceEvent) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, event); err != nil {
		klog.V(6).Infof("instance event publish failed: type=%s, err=%v", event.Type, err)
	}
}
