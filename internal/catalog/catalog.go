// Package catalog holds the read-only reference data shipped with the
// service: scholarships, university programs and extracurricular activities.
package catalog

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Dee1911/Aspire.can/internal/platform/envutil"
	"github.com/Dee1911/Aspire.can/internal/platform/logger"
)

// CATALOG_DIR replaces the embedded files with a directory holding the same
// three YAML files.
const catalogDirEnv = "CATALOG_DIR"

//go:embed scholarships.yaml programs.yaml activities.yaml
var embedded embed.FS

type Scholarship struct {
	Name        string `yaml:"name" json:"name"`
	Amount      int    `yaml:"amount" json:"amount"`
	Eligibility string `yaml:"eligibility" json:"eligibility"`
	Deadline    string `yaml:"deadline" json:"deadline"`
	Website     string `yaml:"website" json:"website"`
}

type Program struct {
	ProgramName    string `yaml:"programName" json:"programName"`
	UniversityName string `yaml:"universityName" json:"universityName"`
	Province       string `yaml:"province" json:"province"`
	Faculty        string `yaml:"faculty" json:"faculty"`
	Description    string `yaml:"description" json:"description,omitempty"`
}

type Activity struct {
	Name         string `yaml:"name" json:"name"`
	Category     string `yaml:"category" json:"category"`
	Province     string `yaml:"province" json:"province"`
	Description  string `yaml:"description" json:"description"`
	SkillsGained string `yaml:"skillsGained" json:"skillsGained"`
}

// ProgramFilter fields are optional; empty means no constraint.
type ProgramFilter struct {
	Query    string
	Province string
	Faculty  string
}

type ActivityFilter struct {
	Query    string
	Province string
	Category string
}

// Catalog is immutable after loading; accessors return copies.
type Catalog struct {
	scholarships []Scholarship
	programs     []Program
	activities   []Activity
}

type scholarshipsFile struct {
	Version      int           `yaml:"version"`
	Scholarships []Scholarship `yaml:"scholarships"`
}

type programsFile struct {
	Version  int       `yaml:"version"`
	Programs []Program `yaml:"programs"`
}

type activitiesFile struct {
	Version    int        `yaml:"version"`
	Activities []Activity `yaml:"activities"`
}

var (
	defaultOnce sync.Once
	defaultCat  *Catalog
	defaultErr  error
)

// Default loads the catalog once per process, from CATALOG_DIR when set and
// from the embedded files otherwise.
func Default(log *logger.Logger) (*Catalog, error) {
	defaultOnce.Do(func() {
		var src fs.FS = embedded
		if dir := envutil.String(catalogDirEnv, ""); dir != "" {
			src = os.DirFS(filepath.Clean(dir))
			if log != nil {
				log.Info("Loading catalog from directory", "dir", dir)
			}
		}
		defaultCat, defaultErr = Load(src)
	})
	return defaultCat, defaultErr
}

// Load parses and validates the three catalog files from fsys.
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		sf scholarshipsFile
		pf programsFile
		af activitiesFile
	)
	for name, dst := range map[string]any{
		"scholarships.yaml": &sf,
		"programs.yaml":     &pf,
		"activities.yaml":   &af,
	} {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		if err := yaml.Unmarshal(data, dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
	}
	c := &Catalog{scholarships: sf.Scholarships, programs: pf.Programs, activities: af.Activities}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	var errs []error
	seen := map[string]bool{}
	for i, s := range c.scholarships {
		if strings.TrimSpace(s.Name) == "" {
			errs = append(errs, fmt.Errorf("scholarships[%d]: name is required", i))
		}
		if s.Amount < 0 {
			errs = append(errs, fmt.Errorf("scholarships[%d]: negative amount", i))
		}
	}
	for i, p := range c.programs {
		if strings.TrimSpace(p.ProgramName) == "" || strings.TrimSpace(p.UniversityName) == "" {
			errs = append(errs, fmt.Errorf("programs[%d]: programName and universityName are required", i))
		}
	}
	for i, a := range c.activities {
		key := strings.ToLower(strings.TrimSpace(a.Name))
		if key == "" {
			errs = append(errs, fmt.Errorf("activities[%d]: name is required", i))
			continue
		}
		if seen[key] {
			errs = append(errs, fmt.Errorf("activities[%d]: duplicate name %q", i, a.Name))
		}
		seen[key] = true
	}
	return errors.Join(errs...)
}

func (c *Catalog) Scholarships() []Scholarship {
	return append([]Scholarship(nil), c.scholarships...)
}

func (c *Catalog) Programs(f ProgramFilter) []Program {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []Program{}
	for _, p := range c.programs {
		if q != "" && !containsAny(q, p.ProgramName, p.UniversityName) {
			continue
		}
		if !matchExact(f.Province, p.Province) || !matchExact(f.Faculty, p.Faculty) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (c *Catalog) Activities(f ActivityFilter) []Activity {
	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := []Activity{}
	for _, a := range c.activities {
		if q != "" && !containsAny(q, a.Name, a.Description) {
			continue
		}
		if !matchExact(f.Province, a.Province) || !matchExact(f.Category, a.Category) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// Activity looks up an activity by name, ignoring case.
func (c *Catalog) Activity(name string) (Activity, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, a := range c.activities {
		if strings.ToLower(a.Name) == key {
			return a, true
		}
	}
	return Activity{}, false
}

func (c *Catalog) Provinces() []string {
	var vals []string
	for _, p := range c.programs {
		vals = append(vals, p.Province)
	}
	for _, a := range c.activities {
		vals = append(vals, a.Province)
	}
	return distinctSorted(vals)
}

func (c *Catalog) Faculties() []string {
	vals := make([]string, 0, len(c.programs))
	for _, p := range c.programs {
		vals = append(vals, p.Faculty)
	}
	return distinctSorted(vals)
}

func (c *Catalog) Categories() []string {
	vals := make([]string, 0, len(c.activities))
	for _, a := range c.activities {
		vals = append(vals, a.Category)
	}
	return distinctSorted(vals)
}

func containsAny(q string, fields ...string) bool {
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}

func matchExact(want, got string) bool {
	want = strings.TrimSpace(want)
	return want == "" || strings.EqualFold(want, got)
}

func distinctSorted(vals []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, v := range vals {
		v = strings.TrimSpace(v)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}
