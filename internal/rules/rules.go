// Package rules loads the competency rule tables: qualification keyword patterns,
// activity-type base impacts and description keyword boosts.
// The default ruleset is a versioned JSON document embedded at compile time.
package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/shemaobt/translation-helper-sub001/internal/schemas"
	"github.com/shemaobt/translation-helper-sub001/internal/types"
)

// FallbackActivityType is used for activities with a missing or unrecognized type.
const FallbackActivityType = "general_experience"

//go:embed default.json
var defaultDocument []byte

// Impact means "contributes Weight points toward CompetencyID"
type Impact struct {
	CompetencyID types.CompetencyID `json:"competency_id" validate:"required,competency"`
	Weight       int                `json:"weight" validate:"min=1,max=5"`
}

// Pattern fires when any keyword appears in a qualification's text; all impacts then apply
type Pattern struct {
	Name     string   `json:"name" validate:"required"`
	Keywords []string `json:"keywords" validate:"required,min=1,dive,required"`
	Impacts  []Impact `json:"impacts" validate:"required,min=1,dive"`
}

// Boost adds a flat Bonus to one competency when any keyword appears in an activity description
type Boost struct {
	Keywords     []string           `json:"keywords" validate:"required,min=1,dive,required"`
	CompetencyID types.CompetencyID `json:"competency_id" validate:"required,competency"`
	Bonus        int                `json:"bonus" validate:"min=1,max=5"`
}

// Ruleset is the complete, immutable set of scoring tables.
// Keywords are stored lowercased.
type Ruleset struct {
	Version       string              `json:"version" validate:"required"`
	Patterns      []Pattern           `json:"patterns" validate:"required,min=1,dive"`
	ActivityTypes map[string][]Impact `json:"activity_types"`
	Boosts        []Boost             `json:"description_boosts" validate:"dive"`
}

// RulesetError reports a ruleset that parsed but is semantically unusable
type RulesetError struct {
	Message string
	Cause   error
}

func (e *RulesetError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid ruleset: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid ruleset: %s", e.Message)
}

func (e *RulesetError) Unwrap() error {
	return e.Cause
}

var (
	defaultOnce    sync.Once
	defaultRuleset *Ruleset
	defaultErr     error
)

// Default returns the embedded ruleset, parsing it on first use.
// It panics if the embedded document is invalid, which is a build defect.
func Default() *Ruleset {
	defaultOnce.Do(func() {
		defaultRuleset, defaultErr = Parse(defaultDocument)
	})
	if defaultErr != nil {
		panic(fmt.Sprintf("embedded ruleset is invalid: %v", defaultErr))
	}
	return defaultRuleset
}

// DefaultDocument returns a copy of the embedded ruleset JSON
func DefaultDocument() []byte {
	out := make([]byte, len(defaultDocument))
	copy(out, defaultDocument)
	return out
}

// LoadFile reads and validates a ruleset from disk
func LoadFile(path string) (*Ruleset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read ruleset file %s: %w", path, err)
	}

	rs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load ruleset %s: %w", path, err)
	}
	return rs, nil
}

// Load returns the ruleset at path, or the embedded default when path is empty
func Load(path string) (*Ruleset, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// Parse validates a ruleset document against the ruleset schema, decodes it
// and checks the invariants the schema cannot express.
func Parse(data []byte) (*Ruleset, error) {
	if err := schemas.ValidateRuleset(data); err != nil {
		return nil, err
	}

	var rs Ruleset
	if err := json.Unmarshal(data, &rs); err != nil {
		return nil, fmt.Errorf("failed to parse ruleset JSON: %w", err)
	}

	if err := rs.Validate(); err != nil {
		return nil, err
	}

	rs.normalize()
	return &rs, nil
}

// Validate checks field constraints, the fallback activity type and
// per-type uniqueness of competencies.
func (rs *Ruleset) Validate() error {
	validate := newValidator()

	if err := validate.Struct(rs); err != nil {
		return &RulesetError{Message: "field validation failed", Cause: err}
	}

	if _, ok := rs.ActivityTypes[FallbackActivityType]; !ok {
		return &RulesetError{Message: fmt.Sprintf("activity type %q is required", FallbackActivityType)}
	}

	for tag, impacts := range rs.ActivityTypes {
		if strings.TrimSpace(tag) == "" {
			return &RulesetError{Message: "activity type tag cannot be empty"}
		}
		if len(impacts) == 0 {
			return &RulesetError{Message: fmt.Sprintf("activity type %q has no impacts", tag)}
		}

		seen := make(map[types.CompetencyID]bool, len(impacts))
		for _, impact := range impacts {
			if err := validate.Struct(impact); err != nil {
				return &RulesetError{Message: fmt.Sprintf("activity type %q", tag), Cause: err}
			}
			if seen[impact.CompetencyID] {
				return &RulesetError{Message: fmt.Sprintf("activity type %q lists %s more than once", tag, impact.CompetencyID)}
			}
			seen[impact.CompetencyID] = true
		}
	}

	return nil
}

// ActivityTypeNames returns the known activity-type tags, sorted
func (rs *Ruleset) ActivityTypeNames() []string {
	names := make([]string, 0, len(rs.ActivityTypes))
	for name := range rs.ActivityTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ActivityImpacts returns the base impacts for tag and whether the tag was known.
// Unknown tags resolve to the fallback entry.
func (rs *Ruleset) ActivityImpacts(tag string) ([]Impact, bool) {
	if impacts, ok := rs.ActivityTypes[tag]; ok {
		return impacts, true
	}
	return rs.ActivityTypes[FallbackActivityType], false
}

func (rs *Ruleset) normalize() {
	for i := range rs.Patterns {
		rs.Patterns[i].Keywords = lowerAll(rs.Patterns[i].Keywords)
	}
	for i := range rs.Boosts {
		rs.Boosts[i].Keywords = lowerAll(rs.Boosts[i].Keywords)
	}
}

func lowerAll(keywords []string) []string {
	out := make([]string, len(keywords))
	for i, k := range keywords {
		out[i] = strings.ToLower(k)
	}
	return out
}

func newValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("competency", func(fl validator.FieldLevel) bool {
		return types.CompetencyID(fl.Field().String()).Valid()
	})
	return validate
}
