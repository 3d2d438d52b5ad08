package models

import "path/filepath"

// NotebookPriority classifies how eagerly a notebook type claims resources.
// An "option" type only offers itself; any other classification claims the
// resource as its default editor.
type NotebookPriority string

const (
	PriorityOption  NotebookPriority = "option"
	PriorityDefault NotebookPriority = "default"
)

// Numeric ranks returned when notebook types compete for a resource.
// Non-negative means the type can handle it; higher wins.
const (
	RankNone    = -1
	RankOption  = 100
	RankDefault = 200
)

// Selector matches a resource against a notebook type by filename glob.
// An empty pattern never matches.
type Selector struct {
	FilenamePattern string `yaml:"filename_pattern" json:"filename_pattern" mapstructure:"filename_pattern"`
}

// Matches reports whether the selector matches the given resource path.
// The pattern is tested against the base name (including extension).
func (s Selector) Matches(path string) bool {
	if s.FilenamePattern == "" {
		return false
	}
	ok, err := filepath.Match(s.FilenamePattern, filepath.Base(path))
	if err != nil {
		// Malformed pattern, treat as non-matching
		return false
	}
	return ok
}

// NotebookTypeDescriptor identifies a registered notebook type and the rules
// that activate it for a resource.
type NotebookTypeDescriptor struct {
	ID          string           `yaml:"id" json:"id" mapstructure:"id"`
	DisplayName string           `yaml:"display_name" json:"display_name,omitempty" mapstructure:"display_name"`
	Priority    NotebookPriority `yaml:"priority" json:"priority,omitempty" mapstructure:"priority"`
	Selectors   []Selector       `yaml:"selectors" json:"selectors,omitempty" mapstructure:"selectors"`
}

// Rank converts the descriptor's priority classification into its numeric
// rank. A nil descriptor ranks as unhandled.
func (d *NotebookTypeDescriptor) Rank() int {
	if d == nil {
		return RankNone
	}
	if d.Priority == PriorityOption {
		return RankOption
	}
	return RankDefault
}

// SelectedBy reports whether any of the descriptor's selectors match the
// resource path.
func (d *NotebookTypeDescriptor) SelectedBy(path string) bool {
	for _, sel := range d.Selectors {
		if sel.Matches(path) {
			return true
		}
	}
	return false
}

// Validate checks the descriptor is usable for registration.
func (d *NotebookTypeDescriptor) Validate() error {
	if d.ID == "" {
		return ErrMissingID
	}
	return nil
}
