// Package quest implements the scavenger-hunt quest state machine: target
// sampling, detection matching, and the single completion transition.
package quest

import (
	"errors"
	"math/rand"
	"time"
)

// Scoring policy. Targets are worth more than incidental finds.
const (
	DefaultSize  = 5
	TargetPoints = 50
	BonusPoints  = 5
)

var (
	// ErrPoolTooSmall is returned when the sampling pool cannot cover the
	// requested quest size.
	ErrPoolTooSmall = errors.New("quest: label pool smaller than quest size")
	// ErrAlreadyCompleted is returned when a completed quest is asked to
	// complete again.
	ErrAlreadyCompleted = errors.New("quest: already completed")
)

// Quest is one active scavenger hunt: a fixed target list and the set of
// targets found so far. A quest completes at most once and never un-completes.
type Quest struct {
	targets     []string
	found       map[string]struct{}
	startedAt   time.Time
	completed   bool
	completedAt time.Time
}

// Report describes the effect of one detection batch on a quest.
type Report struct {
	// NewlyFound are targets seen for the first time, in detection order.
	NewlyFound []string
	// Bonus are non-target labels in the batch, deduplicated within the
	// batch only. The same label earns bonus again in a later batch.
	Bonus []string
}

// Points returns the score awarded for this batch.
func (r Report) Points() int {
	return len(r.NewlyFound)*TargetPoints + len(r.Bonus)*BonusPoints
}

// New samples a quest of size distinct targets from pool using rng and stamps
// the start time. The pool is not mutated.
func New(pool []string, size int, rng *rand.Rand, startedAt time.Time) (*Quest, error) {
	if size <= 0 {
		size = DefaultSize
	}
	if len(pool) < size {
		return nil, ErrPoolTooSmall
	}
	shuffled := make([]string, len(pool))
	copy(shuffled, pool)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return &Quest{
		targets:   shuffled[:size:size],
		found:     make(map[string]struct{}, size),
		startedAt: startedAt,
	}, nil
}

// ReportDetections applies one batch of detected labels. Targets already
// found stay found; duplicate labels within the batch count once. Detections
// after completion leave the quest unchanged.
func (q *Quest) ReportDetections(labels []string) Report {
	var report Report
	if q.completed {
		return report
	}
	seenBonus := make(map[string]struct{})
	for _, label := range labels {
		if q.isTarget(label) {
			if _, already := q.found[label]; already {
				continue
			}
			q.found[label] = struct{}{}
			report.NewlyFound = append(report.NewlyFound, label)
			continue
		}
		if _, dup := seenBonus[label]; dup {
			continue
		}
		seenBonus[label] = struct{}{}
		report.Bonus = append(report.Bonus, label)
	}
	return report
}

// Complete marks the quest finished at the given time and returns the elapsed
// seconds since the quest started. Completing twice is an error.
func (q *Quest) Complete(at time.Time) (float64, error) {
	if q.completed {
		return 0, ErrAlreadyCompleted
	}
	q.completed = true
	q.completedAt = at
	return at.Sub(q.startedAt).Seconds(), nil
}

// IsComplete reports whether every target has been found.
func (q *Quest) IsComplete() bool {
	return len(q.found) == len(q.targets)
}

// Completed reports whether the completion transition has fired.
func (q *Quest) Completed() bool {
	return q.completed
}

// Targets returns the quest target list in sampling order.
func (q *Quest) Targets() []string {
	return append([]string(nil), q.targets...)
}

// Found returns the found targets in target-list order.
func (q *Quest) Found() []string {
	found := make([]string, 0, len(q.found))
	for _, target := range q.targets {
		if _, ok := q.found[target]; ok {
			found = append(found, target)
		}
	}
	return found
}

// StartedAt returns the quest start time.
func (q *Quest) StartedAt() time.Time {
	return q.startedAt
}

// CompletedAt returns the completion time, zero when not completed.
func (q *Quest) CompletedAt() time.Time {
	return q.completedAt
}

func (q *Quest) isTarget(label string) bool {
	for _, target := range q.targets {
		if target == label {
			return true
		}
	}
	return false
}
