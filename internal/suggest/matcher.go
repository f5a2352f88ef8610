// Package suggest ranks catalog projects against a set of detected object
// labels. Combo projects whose full object set is visible outrank every
// single-object match.
package suggest

import (
	"sort"
	"strings"

	"questhunt/internal/catalog"
	"questhunt/internal/model"
)

// comboScore puts any satisfied combo above the highest possible
// single-object material-overlap score.
const comboScore = 1000

// DefaultMaxResults bounds a suggestion list when the caller does not say.
const DefaultMaxResults = 6

// Matcher ranks projects from a loaded catalog.
type Matcher struct {
	catalog *catalog.Catalog
}

// NewMatcher returns a matcher over the given catalog.
func NewMatcher(c *catalog.Catalog) *Matcher {
	return &Matcher{catalog: c}
}

// Suggest returns up to maxResults ranked suggestions for the detected
// labels. Combos whose required objects are all present come first with a
// fixed high score; single-object projects follow, scored by how many of
// their materials are among the detected labels. A title appears at most
// once, with the combo form winning. Ordering is stable: equal scores keep
// combo-catalog order then detection order.
func (m *Matcher) Suggest(detected []string, maxResults int) []model.Suggestion {
	if maxResults <= 0 || len(detected) == 0 {
		return []model.Suggestion{}
	}

	detectedSet := make(map[string]struct{}, len(detected))
	for _, label := range detected {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		detectedSet[label] = struct{}{}
	}
	if len(detectedSet) == 0 {
		return []model.Suggestion{}
	}

	suggestions := make([]model.Suggestion, 0, maxResults)
	seenTitles := make(map[string]struct{})

	for _, combo := range m.catalog.Combos() {
		if !allPresent(combo.RequiredObjects, detectedSet) {
			continue
		}
		if _, dup := seenTitles[combo.Title]; dup {
			continue
		}
		seenTitles[combo.Title] = struct{}{}
		suggestions = append(suggestions, model.Suggestion{
			Project: combo,
			Score:   comboScore,
			IsCombo: true,
		})
	}

	for _, label := range detected {
		for _, project := range m.catalog.ProjectsFor(label) {
			if _, dup := seenTitles[project.Title]; dup {
				continue
			}
			seenTitles[project.Title] = struct{}{}
			suggestions = append(suggestions, model.Suggestion{
				Project: project,
				Score:   materialOverlap(project.Materials, detectedSet),
			})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > maxResults {
		suggestions = suggestions[:maxResults]
	}
	return suggestions
}

func allPresent(required []string, detected map[string]struct{}) bool {
	for _, label := range required {
		if _, ok := detected[label]; !ok {
			return false
		}
	}
	return true
}

func materialOverlap(materials []string, detected map[string]struct{}) int {
	overlap := 0
	seen := make(map[string]struct{}, len(materials))
	for _, material := range materials {
		if _, dup := seen[material]; dup {
			continue
		}
		seen[material] = struct{}{}
		if _, ok := detected[material]; ok {
			overlap++
		}
	}
	return overlap
}
