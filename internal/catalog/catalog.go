// Package catalog holds the read-only reference content: challenge
// templates, meals, exercises, courses, badge definitions and access plans.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/julianstephens/vitalit/internal/logger"
	"github.com/julianstephens/vitalit/internal/validation"
)

//go:embed data/*.yaml
var embedded embed.FS

const (
	challengesFile = "challenges.yaml"
	mealsFile      = "meals.yaml"
	exercisesFile  = "exercises.yaml"
	coursesFile    = "courses.yaml"
	badgesFile     = "badges.yaml"
	plansFile      = "plans.yaml"
)

// Catalog is loaded once at startup and never mutated afterwards.
type Catalog struct {
	Challenges []ChallengeTemplate `yaml:"challenges" validate:"dive"`
	Meals      []Meal              `yaml:"meals" validate:"dive"`
	Exercises  []Exercise          `yaml:"exercises" validate:"dive"`
	Courses    []Course            `yaml:"courses" validate:"dive"`
	Badges     []BadgeDefinition   `yaml:"badges" validate:"dive"`
	Plans      []Plan              `yaml:"plans" validate:"dive"`
}

// Default loads the catalog compiled into the binary.
func Default() (*Catalog, error) {
	sub, err := fs.Sub(embedded, "data")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// MustDefault is Default for callers that cannot proceed without content.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadDir loads the embedded catalog, then replaces each section for which
// dir holds a file of the same name.
func LoadDir(dir string) (*Catalog, error) {
	if dir == "" {
		return Default()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("catalog dir %s is not a directory", dir)
	}
	return load(overlayFS{primary: os.DirFS(dir), fallback: mustSub(embedded, "data"), dir: dir})
}

// Load reads all catalog sections from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	return load(fsys)
}

func load(fsys fs.FS) (*Catalog, error) {
	c := &Catalog{}
	sections := []struct {
		file string
		dest any
	}{
		{challengesFile, &c.Challenges},
		{mealsFile, &c.Meals},
		{exercisesFile, &c.Exercises},
		{coursesFile, &c.Courses},
		{badgesFile, &c.Badges},
		{plansFile, &c.Plans},
	}
	for _, s := range sections {
		if err := decodeSection(fsys, s.file, s.dest); err != nil {
			return nil, err
		}
	}

	if err := validation.Struct(c); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if err := c.check(); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	for i := range c.Challenges {
		c.Challenges[i].expand()
	}
	for i := range c.Plans {
		if err := c.Plans[i].seal(); err != nil {
			return nil, fmt.Errorf("catalog: plan %d: %w", c.Plans[i].ID, err)
		}
	}
	logger.Debug("Catalog loaded",
		"challenges", len(c.Challenges), "meals", len(c.Meals), "exercises", len(c.Exercises),
		"courses", len(c.Courses), "badges", len(c.Badges), "plans", len(c.Plans))
	return c, nil
}

func decodeSection(fsys fs.FS, name string, dest any) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	// Each file is a mapping with a single top-level key named after the section.
	wrapper := map[string]yaml.Node{}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	key := name[:len(name)-len(filepath.Ext(name))]
	node, ok := wrapper[key]
	if !ok {
		return fmt.Errorf("parse %s: missing top-level %q key", name, key)
	}
	if err := node.Decode(dest); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// check enforces cross-item rules the struct tags cannot express.
func (c *Catalog) check() error {
	if err := uniqueIDs("challenge", c.Challenges, func(t ChallengeTemplate) string { return t.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("meal", c.Meals, func(m Meal) string { return m.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("exercise", c.Exercises, func(e Exercise) string { return e.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("course", c.Courses, func(co Course) string { return co.ID }); err != nil {
		return err
	}
	if err := uniqueIDs("badge", c.Badges, func(b BadgeDefinition) string { return b.ID }); err != nil {
		return err
	}
	planIDs := make([]int, 0, len(c.Plans))
	for _, p := range c.Plans {
		if slices.Contains(planIDs, p.ID) {
			return fmt.Errorf("duplicate plan id %d", p.ID)
		}
		planIDs = append(planIDs, p.ID)
	}
	for _, t := range c.Challenges {
		if err := t.check(); err != nil {
			return err
		}
	}
	gated := func(kind, id string, plans []int) error {
		for _, p := range plans {
			if !slices.Contains(planIDs, p) {
				return fmt.Errorf("%s %q requires unknown plan %d", kind, id, p)
			}
		}
		return nil
	}
	for _, t := range c.Challenges {
		if err := gated("challenge", t.ID, t.AccessPlans); err != nil {
			return err
		}
	}
	for _, m := range c.Meals {
		if err := gated("meal", m.ID, m.AccessPlans); err != nil {
			return err
		}
	}
	for _, e := range c.Exercises {
		if err := gated("exercise", e.ID, e.AccessPlans); err != nil {
			return err
		}
	}
	for _, co := range c.Courses {
		if err := gated("course", co.ID, co.AccessPlans); err != nil {
			return err
		}
		if err := co.check(); err != nil {
			return err
		}
	}
	return nil
}

func uniqueIDs[T any](kind string, items []T, id func(T) string) error {
	seen := make(map[string]bool, len(items))
	for _, it := range items {
		k := id(it)
		if seen[k] {
			return fmt.Errorf("duplicate %s id %q", kind, k)
		}
		seen[k] = true
	}
	return nil
}

// Challenge returns the template with id.
func (c *Catalog) Challenge(id string) (ChallengeTemplate, bool) {
	return find(c.Challenges, func(t ChallengeTemplate) bool { return t.ID == id })
}

// ChallengeIDs lists every template id in catalog order.
func (c *Catalog) ChallengeIDs() []string {
	ids := make([]string, len(c.Challenges))
	for i, t := range c.Challenges {
		ids[i] = t.ID
	}
	return ids
}

// Meal returns the meal with id.
func (c *Catalog) Meal(id string) (Meal, bool) {
	return find(c.Meals, func(m Meal) bool { return m.ID == id })
}

// Exercise returns the exercise with id.
func (c *Catalog) Exercise(id string) (Exercise, bool) {
	return find(c.Exercises, func(e Exercise) bool { return e.ID == id })
}

// Course returns the course with id.
func (c *Catalog) Course(id string) (Course, bool) {
	return find(c.Courses, func(co Course) bool { return co.ID == id })
}

// Badge returns the badge definition with id.
func (c *Catalog) Badge(id string) (BadgeDefinition, bool) {
	return find(c.Badges, func(b BadgeDefinition) bool { return b.ID == id })
}

// Plan returns the access plan with id.
func (c *Catalog) Plan(id int) (Plan, bool) {
	return find(c.Plans, func(p Plan) bool { return p.ID == id })
}

func find[T any](items []T, match func(T) bool) (T, bool) {
	for _, it := range items {
		if match(it) {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// overlayFS serves files from primary when present, else from fallback.
type overlayFS struct {
	primary  fs.FS
	fallback fs.FS
	dir      string
}

func (o overlayFS) Open(name string) (fs.File, error) {
	f, err := o.primary.Open(name)
	if err == nil {
		logger.Info("Catalog section overridden", "file", filepath.Join(o.dir, name))
		return f, nil
	}
	return o.fallback.Open(name)
}

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}
