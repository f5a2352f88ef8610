package model

import (
	"sort"
	"time"
)

// Detection is one labeled object reported by the external detector.
// The core only acts on Label; Confidence is carried through for display.
type Detection struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

// SortDetections orders a batch by descending confidence, keeping the
// detector's emission order for ties.
func SortDetections(detections []Detection) {
	sort.SliceStable(detections, func(i, j int) bool {
		return detections[i].Confidence > detections[j].Confidence
	})
}

// Labels extracts the label column of a batch in order.
func Labels(detections []Detection) []string {
	labels := make([]string, 0, len(detections))
	for _, d := range detections {
		labels = append(labels, d.Label)
	}
	return labels
}

// Project is one craft-project definition from the catalog. Combo projects
// carry the set of labels that must all be visible at once in
// RequiredObjects; single-object projects leave it empty and are keyed by
// their catalog label.
type Project struct {
	Title           string   `json:"title"`
	Emoji           string   `json:"emoji"`
	Difficulty      string   `json:"difficulty"`
	TimeEstimate    string   `json:"time_est"`
	STEMTag         string   `json:"stem_tag"`
	Tagline         string   `json:"tagline"`
	Steps           []string `json:"steps"`
	Materials       []string `json:"materials"`
	Learn           string   `json:"learn,omitempty"`
	RequiredObjects []string `json:"required_objects,omitempty"`
}

// Suggestion is a ranked catalog project produced by the matcher.
type Suggestion struct {
	Project
	Score   int  `json:"score"`
	IsCombo bool `json:"is_combo"`
}

// ProgressionRecord is the durable cross-session progress state.
// Trophies grows in unlock order and never loses an id; BestTime only
// decreases; a nil BestTime means no quest has been completed yet.
type ProgressionRecord struct {
	Streak               int      `json:"streak"`
	LastSessionDate      string   `json:"last_session_date,omitempty"`
	Trophies             []string `json:"trophies"`
	BestTime             *float64 `json:"best_time"`
	TotalQuestsCompleted int      `json:"total_quests_completed"`
}

// DefaultProgression returns the all-zero record used when no store exists
// or the stored record is unreadable.
func DefaultProgression() ProgressionRecord {
	return ProgressionRecord{Trophies: []string{}}
}

// HasTrophy reports whether the trophy id is already unlocked.
func (r ProgressionRecord) HasTrophy(id string) bool {
	for _, t := range r.Trophies {
		if t == id {
			return true
		}
	}
	return false
}

// Trophy is one unlockable achievement from the trophy rule catalog.
type Trophy struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Unlocked    bool   `json:"unlocked"`
}

// CompletedProject is one append-only record of a project the player marked
// done, unique by title.
type CompletedProject struct {
	Title           string    `json:"title"`
	Emoji           string    `json:"emoji"`
	STEMTag         string    `json:"stem_tag"`
	Difficulty      string    `json:"difficulty"`
	TimeEstimate    string    `json:"time_est"`
	Tagline         string    `json:"tagline"`
	CompletedAt     time.Time `json:"completed_at"`
	ObjectsDetected []string  `json:"objects_detected"`
}
