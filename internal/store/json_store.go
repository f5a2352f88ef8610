package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"questhunt/internal/model"
)

const (
	progressFileName  = "progress.json"
	completedFileName = "completed_projects.json"
)

// JSONStore keeps both records as pretty-printed JSON files in a data
// directory. Writes go through a temp file and rename so a crash never
// leaves a truncated file, and a mutex serializes concurrent completions.
type JSONStore struct {
	dataDir string
	mu      sync.RWMutex

	progress  model.ProgressionRecord
	completed []model.CompletedProject
}

func NewJSONStore(dataDir string) (*JSONStore, error) {
	s := &JSONStore{
		dataDir:   dataDir,
		progress:  model.DefaultProgression(),
		completed: make([]model.CompletedProject, 0),
	}
	s.load()
	return s, nil
}

func (s *JSONStore) LoadProgress() (model.ProgressionRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.progress
	rec.Trophies = append([]string(nil), rec.Trophies...)
	if rec.Trophies == nil {
		rec.Trophies = []string{}
	}
	return rec, nil
}

func (s *JSONStore) SaveProgress(rec model.ProgressionRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.Trophies == nil {
		rec.Trophies = []string{}
	}
	s.progress = rec
	return s.persistLocked(progressFileName, s.progress)
}

func (s *JSONStore) AppendCompletedProject(cp model.CompletedProject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.completed {
		if existing.Title == cp.Title {
			return nil
		}
	}
	s.completed = append(s.completed, cp)
	return s.persistLocked(completedFileName, s.completed)
}

func (s *JSONStore) ListCompletedProjects() ([]model.CompletedProject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]model.CompletedProject, 0, len(s.completed))
	for i := len(s.completed) - 1; i >= 0; i-- {
		result = append(result, s.completed[i])
	}
	return result, nil
}

func (s *JSONStore) IsProjectCompleted(title string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, existing := range s.completed {
		if existing.Title == title {
			return true, nil
		}
	}
	return false, nil
}

// load reads both files, keeping defaults for anything missing or
// unparseable. Read failures are not errors: a fresh or corrupt data
// directory starts the player from zero.
func (s *JSONStore) load() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, err := os.ReadFile(filepath.Join(s.dataDir, progressFileName)); err == nil {
		var rec model.ProgressionRecord
		if err := json.Unmarshal(data, &rec); err == nil {
			if rec.Trophies == nil {
				rec.Trophies = []string{}
			}
			if rec.Streak < 0 {
				rec.Streak = 0
			}
			if rec.TotalQuestsCompleted < 0 {
				rec.TotalQuestsCompleted = 0
			}
			s.progress = rec
		}
	}

	if data, err := os.ReadFile(filepath.Join(s.dataDir, completedFileName)); err == nil {
		var completed []model.CompletedProject
		if err := json.Unmarshal(data, &completed); err == nil && completed != nil {
			s.completed = completed
		}
	}
}

func (s *JSONStore) persistLocked(fileName string, v any) error {
	if err := os.MkdirAll(s.dataDir, 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dataDir, fileName)
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}
