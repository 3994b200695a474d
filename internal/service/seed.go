package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
	"k8s.io/klog/v2"
)

// SeedService publishes checklist templates from YAML seed files at
// startup. Already-published (name, version) pairs are skipped, so seeding
// is idempotent and a seed file edit without a version bump is a no-op.
type SeedService struct {
	checklistService *ChecklistService
}

func NewSeedService(checklistService *ChecklistService) *SeedService {
	return &SeedService{checklistService: checklistService}
}

type checklistSeed struct {
	Name    string     `yaml:"name"`
	Version string     `yaml:"version"`
	Items   []seedItem `yaml:"items"`
}

// seedItem accepts either a bare string (shorthand for a required item
// with only display text) or a full item mapping.
type seedItem struct {
	ChecklistItemInput `yaml:",inline"`
}

func (s *seedItem) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var text string
		if err := value.Decode(&text); err != nil {
			return err
		}
		s.ChecklistItemInput = ChecklistItemInput{DisplayText: text, IsRequired: true}
		return nil
	}
	return value.Decode(&s.ChecklistItemInput)
}

// LoadDir publishes every missing checklist version found in dir. A
// missing directory is not an error; the service just starts unseeded.
func (s *SeedService) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			klog.V(6).Infof("seed directory %s does not exist, skipping", dir)
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		if err := s.loadFile(filepath.Join(dir, entry.Name())); err != nil {
			return fmt.Errorf("seed file %s: %w", entry.Name(), err)
		}
	}
	return nil
}

func (s *SeedService) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var seeds []checklistSeed
	if err := yaml.Unmarshal(data, &seeds); err != nil {
		return err
	}

	for _, seed := range seeds {
		_, err := s.checklistService.GetByNameVersion(seed.Name, seed.Version)
		if err == nil {
			continue
		}
		if !errors.Is(err, ErrNotFound) {
			return err
		}

		items := make([]ChecklistItemInput, 0, len(seed.Items))
		for _, item := range seed.Items {
			items = append(items, item.ChecklistItemInput)
		}
		if _, err := s.checklistService.Publish(seed.Name, seed.Version, items); err != nil {
			return err
		}
		klog.V(6).Infof("seeded checklist %q version %s", seed.Name, seed.Version)
	}
	return nil
}
