package store

import (
	"questhunt/internal/model"
)

// Store is the durable side of the game: the cross-session progression
// record and the completed-project log. Implementations serialize access so
// concurrent completions never lose writes.
type Store interface {
	// LoadProgress returns the progression record, falling back to defaults
	// when no record exists or the stored one is unreadable.
	LoadProgress() (model.ProgressionRecord, error)
	// SaveProgress durably replaces the progression record.
	SaveProgress(rec model.ProgressionRecord) error

	// AppendCompletedProject records a completion. Appending a title that is
	// already present is a no-op.
	AppendCompletedProject(cp model.CompletedProject) error
	// ListCompletedProjects returns completions newest first. An unreadable
	// log reads as empty.
	ListCompletedProjects() ([]model.CompletedProject, error)
	// IsProjectCompleted reports whether a title is already in the log.
	IsProjectCompleted(title string) (bool, error)
}
