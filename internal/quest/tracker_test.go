package quest_test

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
	"time"

	"questhunt/internal/quest"
)

var testPool = []string{
	"cup", "book", "laptop", "apple", "dog", "cat", "spoon", "fork",
	"bowl", "chair", "bottle", "banana",
}

func newTestQuest(t *testing.T) *quest.Quest {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	q, err := quest.New(testPool, 5, rng, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return q
}

// newFixedQuest builds a quest whose target set is exactly labels by sampling
// from a pool of the same size.
func newFixedQuest(t *testing.T, labels []string, startedAt time.Time) *quest.Quest {
	t.Helper()
	rng := rand.New(rand.NewSource(1))
	q, err := quest.New(labels, len(labels), rng, startedAt)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return q
}

func TestNewSamplesDistinctTargets(t *testing.T) {
	t.Parallel()

	q := newTestQuest(t)
	targets := q.Targets()
	if len(targets) != 5 {
		t.Fatalf("Targets() len = %d, want 5", len(targets))
	}
	seen := make(map[string]struct{})
	for _, target := range targets {
		if _, dup := seen[target]; dup {
			t.Fatalf("duplicate target %q", target)
		}
		seen[target] = struct{}{}
		found := false
		for _, label := range testPool {
			if label == target {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("target %q not drawn from pool", target)
		}
	}
}

func TestNewFailsOnSmallPool(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(1))
	_, err := quest.New([]string{"cup", "book"}, 5, rng, time.Now())
	if !errors.Is(err, quest.ErrPoolTooSmall) {
		t.Fatalf("New() error = %v, want ErrPoolTooSmall", err)
	}
}

func TestReportDetectionsMatchingAndBonus(t *testing.T) {
	t.Parallel()

	q := newFixedQuest(t, []string{"cup", "book", "laptop", "apple", "dog"},
		time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	report := q.ReportDetections([]string{"cup", "chair", "cup", "book"})
	if want := []string{"cup", "book"}; !reflect.DeepEqual(report.NewlyFound, want) {
		t.Fatalf("NewlyFound = %v, want %v", report.NewlyFound, want)
	}
	if want := []string{"chair"}; !reflect.DeepEqual(report.Bonus, want) {
		t.Fatalf("Bonus = %v, want %v", report.Bonus, want)
	}
	if got, want := report.Points(), 2*quest.TargetPoints+quest.BonusPoints; got != want {
		t.Fatalf("Points() = %d, want %d", got, want)
	}

	// Re-detecting found targets awards nothing; a repeated bonus label in a
	// new batch counts again.
	report = q.ReportDetections([]string{"cup", "chair"})
	if len(report.NewlyFound) != 0 {
		t.Fatalf("NewlyFound = %v, want empty on re-detection", report.NewlyFound)
	}
	if want := []string{"chair"}; !reflect.DeepEqual(report.Bonus, want) {
		t.Fatalf("Bonus = %v, want %v", report.Bonus, want)
	}
}

func TestFoundKeepsTargetOrder(t *testing.T) {
	t.Parallel()

	q := newFixedQuest(t, []string{"cup", "book", "laptop", "apple", "dog"}, time.Now())
	targets := q.Targets()

	// Report the last target before the first; Found() still follows the
	// target list.
	q.ReportDetections([]string{targets[4], targets[0]})
	if want := []string{targets[0], targets[4]}; !reflect.DeepEqual(q.Found(), want) {
		t.Fatalf("Found() = %v, want %v", q.Found(), want)
	}
}

func TestCompleteOnceOnly(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	q := newFixedQuest(t, []string{"cup", "book"}, start)
	q.ReportDetections([]string{"cup", "book"})
	if !q.IsComplete() {
		t.Fatalf("IsComplete() = false after all targets found")
	}

	elapsed, err := q.Complete(start.Add(45 * time.Second))
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if elapsed != 45 {
		t.Fatalf("Complete() elapsed = %v, want 45", elapsed)
	}
	if !q.Completed() {
		t.Fatalf("Completed() = false after Complete")
	}

	if _, err := q.Complete(start.Add(90 * time.Second)); !errors.Is(err, quest.ErrAlreadyCompleted) {
		t.Fatalf("second Complete() error = %v, want ErrAlreadyCompleted", err)
	}

	// A completed quest ignores further detections.
	report := q.ReportDetections([]string{"chair"})
	if len(report.Bonus) != 0 || len(report.NewlyFound) != 0 {
		t.Fatalf("ReportDetections after completion = %+v, want empty", report)
	}
}
