package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seedFixture = `- name: Programming Job Checklist
  version: "2024-06-01"
  items:
    - Joined the community Discord
    - displayText: Optimized my LinkedIn profile
      detailText: Headline, banner, and featured section filled out
      isRequired: false
      linkText: LinkedIn guide
      linkUri: https://example.com/linkedin
- name: Leetcode 75
  version: "2025-01-01"
  items:
    - Two Sum
`

func TestSeedServiceLoadDir(t *testing.T) {
	f := newReconcilerFixture(t)
	seedService := NewSeedService(f.checklistService)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "checklists.yaml"), []byte(seedFixture), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	require.NoError(t, seedService.LoadDir(dir))

	got, err := f.checklistService.GetLatestByName("Programming Job Checklist")
	require.NoError(t, err)
	require.Len(t, got.ChecklistItems, 2)

	// Bare string items are required with only display text.
	assert.Equal(t, "Joined the community Discord", got.ChecklistItems[0].DisplayText)
	assert.True(t, got.ChecklistItems[0].IsRequired)

	// Mapping items carry the full field set.
	assert.Equal(t, "Optimized my LinkedIn profile", got.ChecklistItems[1].DisplayText)
	assert.False(t, got.ChecklistItems[1].IsRequired)
	assert.Equal(t, "https://example.com/linkedin", got.ChecklistItems[1].LinkURI)

	_, err = f.checklistService.GetLatestByName("Leetcode 75")
	require.NoError(t, err)

	// Re-seeding is a no-op, not a duplicate-version error.
	require.NoError(t, seedService.LoadDir(dir))

	page, err := f.checklistService.List(0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Count)
}

func TestSeedServiceMissingDir(t *testing.T) {
	f := newReconcilerFixture(t)
	seedService := NewSeedService(f.checklistService)

	assert.NoError(t, seedService.LoadDir(filepath.Join(t.TempDir(), "nope")))
}

func TestSeedServiceInvalidVersion(t *testing.T) {
	f := newReconcilerFixture(t)
	seedService := NewSeedService(f.checklistService)

	dir := t.TempDir()
	bad := "- name: Broken\n  version: latest\n  items:\n    - A\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yml"), []byte(bad), 0644))

	err := seedService.LoadDir(dir)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
