// Package catalog holds the craft-project tables and the detector label
// tables. The project data ships embedded in the binary and is validated once
// at startup.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"questhunt/internal/model"
)

//go:embed projects.json
var projectsRawJSON []byte

type projectCatalogFile struct {
	Projects map[string][]model.Project `json:"projects"`
	Combos   []model.Project            `json:"combos"`
}

// Catalog is the loaded, validated project catalog. It is immutable after
// Load and safe for concurrent readers.
type Catalog struct {
	byLabel map[string][]model.Project
	combos  []model.Project
	byTitle map[string]model.Project
}

// Load parses the embedded project tables and validates them: every project
// keyed by a label must use a known detector label, combo projects must
// require at least two known labels, and titles must be unique across the
// whole catalog.
func Load() (*Catalog, error) {
	var file projectCatalogFile
	if err := json.Unmarshal(projectsRawJSON, &file); err != nil {
		return nil, fmt.Errorf("parse project catalog: %w", err)
	}

	c := &Catalog{
		byLabel: make(map[string][]model.Project, len(file.Projects)),
		combos:  make([]model.Project, 0, len(file.Combos)),
		byTitle: make(map[string]model.Project),
	}

	for label, projects := range file.Projects {
		label = strings.TrimSpace(label)
		if !KnownLabel(label) {
			return nil, fmt.Errorf("project catalog: unknown label %q", label)
		}
		for _, p := range projects {
			p.Title = strings.TrimSpace(p.Title)
			if p.Title == "" {
				return nil, fmt.Errorf("project catalog: untitled project under label %q", label)
			}
			if _, dup := c.byTitle[p.Title]; dup {
				return nil, fmt.Errorf("project catalog: duplicate title %q", p.Title)
			}
			c.byTitle[p.Title] = p
			c.byLabel[label] = append(c.byLabel[label], p)
		}
	}

	for _, p := range file.Combos {
		p.Title = strings.TrimSpace(p.Title)
		if p.Title == "" {
			return nil, fmt.Errorf("project catalog: untitled combo project")
		}
		if len(p.RequiredObjects) < 2 {
			return nil, fmt.Errorf("project catalog: combo %q requires fewer than two objects", p.Title)
		}
		for _, label := range p.RequiredObjects {
			if !KnownLabel(label) {
				return nil, fmt.Errorf("project catalog: combo %q requires unknown label %q", p.Title, label)
			}
		}
		if _, dup := c.byTitle[p.Title]; dup {
			return nil, fmt.Errorf("project catalog: duplicate title %q", p.Title)
		}
		c.byTitle[p.Title] = p
		c.combos = append(c.combos, p)
	}

	return c, nil
}

// ProjectsFor returns the single-object projects for a label, in catalog
// order. Unknown labels yield nil.
func (c *Catalog) ProjectsFor(label string) []model.Project {
	projects := c.byLabel[strings.TrimSpace(label)]
	if len(projects) == 0 {
		return nil
	}
	out := make([]model.Project, len(projects))
	copy(out, projects)
	return out
}

// Combos returns every combo project in catalog order.
func (c *Catalog) Combos() []model.Project {
	out := make([]model.Project, len(c.combos))
	copy(out, c.combos)
	return out
}

// FindByTitle looks up any project, single or combo, by its exact title.
func (c *Catalog) FindByTitle(title string) (model.Project, bool) {
	p, ok := c.byTitle[strings.TrimSpace(title)]
	return p, ok
}

// Titles returns every project title in the catalog. Order is unspecified.
func (c *Catalog) Titles() []string {
	titles := make([]string, 0, len(c.byTitle))
	for title := range c.byTitle {
		titles = append(titles, title)
	}
	return titles
}
