package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishValidation(t *testing.T) {
	f := newReconcilerFixture(t)
	items := []ChecklistItemInput{{DisplayText: "A", IsRequired: true}}

	_, err := f.checklistService.Publish("", "2024-06-01", items)
	assert.ErrorIs(t, err, ErrInvalidInput, "empty name")

	_, err = f.checklistService.Publish("Programming Job Checklist", "v2", items)
	assert.ErrorIs(t, err, ErrInvalidInput, "version must be an ISO date")

	_, err = f.checklistService.Publish("Programming Job Checklist", "2024-06-01", nil)
	assert.ErrorIs(t, err, ErrInvalidInput, "no items")

	_, err = f.checklistService.Publish("Programming Job Checklist", "2024-06-01", []ChecklistItemInput{{DisplayText: " "}})
	assert.ErrorIs(t, err, ErrInvalidInput, "blank item text")

	_, err = f.checklistService.Publish("Programming Job Checklist", "2024-06-01", items)
	require.NoError(t, err)

	_, err = f.checklistService.Publish("Programming Job Checklist", "2024-06-01", items)
	assert.ErrorIs(t, err, ErrInvalidInput, "duplicate name+version")
}

func TestGetLatestByNamePicksGreatestVersion(t *testing.T) {
	f := newReconcilerFixture(t)
	f.publish(t, "Programming Job Checklist", "2024-01-01", "A")
	f.publish(t, "Programming Job Checklist", "2024-06-01", "A", "B")
	f.publish(t, "Leetcode 75", "2025-01-01", "Two Sum")

	got, err := f.checklistService.GetLatestByName("Programming Job Checklist")
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", got.Version)
	assert.Equal(t, "Programming Job Checklist", got.Name, "never a version from a different name")

	_, err = f.checklistService.GetLatestByName("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.checklistService.GetLatestByName("  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetByNameVersionPinned(t *testing.T) {
	f := newReconcilerFixture(t)
	old := f.publish(t, "Programming Job Checklist", "2024-01-01", "A")
	f.publish(t, "Programming Job Checklist", "2024-06-01", "A", "B")

	got, err := f.checklistService.GetByNameVersion("Programming Job Checklist", "2024-01-01")
	require.NoError(t, err)
	assert.Equal(t, old.ID, got.ID)

	_, err = f.checklistService.GetByNameVersion("Programming Job Checklist", "2020-01-01")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPagination(t *testing.T) {
	f := newReconcilerFixture(t)
	f.publish(t, "A", "2024-01-01", "x")
	f.publish(t, "B", "2024-01-01", "x")
	f.publish(t, "C", "2024-01-01", "x")

	page, err := f.checklistService.List(0, 2)
	require.NoError(t, err)
	assert.Len(t, page.Checklists, 2)
	assert.True(t, page.HasMore)
	assert.EqualValues(t, 3, page.Count)

	page, err = f.checklistService.List(2, 2)
	require.NoError(t, err)
	assert.Len(t, page.Checklists, 1)
	assert.False(t, page.HasMore)

	_, err = f.checklistService.List(-1, 10)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.checklistService.List(0, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
