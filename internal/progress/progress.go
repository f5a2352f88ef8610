// Package progress applies the cross-session progression rules: the daily
// streak law, best-time tracking, and trophy unlocking. The engine is pure;
// persistence belongs to the store.
package progress

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"questhunt/internal/model"
)

// dateLayout is the calendar-day format persisted in last_session_date.
const dateLayout = "2006-01-02"

//go:embed trophy_rules.json
var trophyRulesRawJSON []byte

const (
	ruleStreak           = "streak"
	ruleTotalCompletions = "total_completions"
	ruleCompletionUnder  = "completion_under"
	ruleNewRecord        = "new_record"
)

type trophyRule struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Kind        string  `json:"kind"`
	Target      float64 `json:"target"`
}

type trophyRuleCatalog struct {
	Trophies []trophyRule `json:"trophies"`
}

// Engine evaluates the trophy rule catalog against progression records.
type Engine struct {
	rules []trophyRule
}

// NewEngine parses and validates the embedded trophy rule catalog.
func NewEngine() (*Engine, error) {
	var catalog trophyRuleCatalog
	if err := json.Unmarshal(trophyRulesRawJSON, &catalog); err != nil {
		return nil, fmt.Errorf("parse trophy rules: %w", err)
	}
	seen := make(map[string]struct{}, len(catalog.Trophies))
	for _, rule := range catalog.Trophies {
		id := strings.TrimSpace(rule.ID)
		if id == "" {
			return nil, fmt.Errorf("trophy rules: rule with empty id")
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("trophy rules: duplicate id %q", id)
		}
		seen[id] = struct{}{}
		switch rule.Kind {
		case ruleStreak, ruleTotalCompletions, ruleCompletionUnder, ruleNewRecord:
		default:
			return nil, fmt.Errorf("trophy rules: rule %q has unknown kind %q", id, rule.Kind)
		}
	}
	return &Engine{rules: catalog.Trophies}, nil
}

// RecordCompletion applies one quest completion to a progression record: the
// streak law, the session date and completion total, the best-time update,
// then trophy evaluation. It returns the updated record and any newly
// unlocked trophies in unlock order. The input record is not mutated.
func (e *Engine) RecordCompletion(rec model.ProgressionRecord, completionSeconds float64, today time.Time) (model.ProgressionRecord, []model.Trophy) {
	rec.Trophies = append([]string(nil), rec.Trophies...)
	if rec.Trophies == nil {
		rec.Trophies = []string{}
	}

	todayStr := today.Format(dateLayout)
	switch {
	case rec.LastSessionDate == "":
		rec.Streak = 1
	case rec.LastSessionDate == todayStr:
		// Same day, no double increment.
	default:
		prev := rec.Streak
		rec.Streak = 1
		if last, err := time.Parse(dateLayout, rec.LastSessionDate); err == nil {
			if last.AddDate(0, 0, 1).Format(dateLayout) == todayStr {
				rec.Streak = prev + 1
			}
		}
	}
	rec.LastSessionDate = todayStr
	rec.TotalQuestsCompleted++

	beatPriorBest := false
	if rec.BestTime == nil || completionSeconds < *rec.BestTime {
		beatPriorBest = rec.BestTime != nil
		best := completionSeconds
		rec.BestTime = &best
	}

	var unlocked []model.Trophy
	for _, rule := range e.rules {
		if rec.HasTrophy(rule.ID) || !e.satisfied(rule, rec, completionSeconds, beatPriorBest) {
			continue
		}
		rec.Trophies = append(rec.Trophies, rule.ID)
		unlocked = append(unlocked, model.Trophy{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Unlocked:    true,
		})
	}
	return rec, unlocked
}

// Trophies returns the whole trophy catalog with each entry's unlocked flag
// taken from the record.
func (e *Engine) Trophies(rec model.ProgressionRecord) []model.Trophy {
	trophies := make([]model.Trophy, 0, len(e.rules))
	for _, rule := range e.rules {
		trophies = append(trophies, model.Trophy{
			ID:          rule.ID,
			Name:        rule.Name,
			Description: rule.Description,
			Unlocked:    rec.HasTrophy(rule.ID),
		})
	}
	return trophies
}

func (e *Engine) satisfied(rule trophyRule, rec model.ProgressionRecord, completionSeconds float64, beatPriorBest bool) bool {
	switch rule.Kind {
	case ruleStreak:
		return float64(rec.Streak) >= rule.Target
	case ruleTotalCompletions:
		return float64(rec.TotalQuestsCompleted) >= rule.Target
	case ruleCompletionUnder:
		return completionSeconds <= rule.Target
	case ruleNewRecord:
		return beatPriorBest
	default:
		return false
	}
}
