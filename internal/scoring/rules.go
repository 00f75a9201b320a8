// Package scoring computes the per-factor attribute scores for structured candidate
// profiles. Every sub-scorer is a pure function of the rule tables and its inputs.
package scoring

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var defaultRulesYAML []byte

// Rules holds every threshold, keyword list and bonus used by the sub-scorers.
type Rules struct {
	Location   LocationRules   `yaml:"location" validate:"required"`
	Title      TitleRules      `yaml:"title" validate:"required"`
	TechStack  TechStackRules  `yaml:"tech_stack" validate:"required"`
	Education  EducationRules  `yaml:"education" validate:"required"`
	Startup    StartupRules    `yaml:"startup" validate:"required"`
	Experience ExperienceRules `yaml:"experience" validate:"required"`
	Skills     SkillsRules     `yaml:"skills" validate:"required"`
	Profile    ProfileRules    `yaml:"profile" validate:"required"`
}

// LocationRules scores a free-text location. Matching is case-sensitive.
type LocationRules struct {
	Primary      []string `yaml:"primary" validate:"required,min=1"`
	PrimaryScore float64  `yaml:"primary_score" validate:"gte=0,lte=1"`
	Nearby       []string `yaml:"nearby"`
	NearbyScore  float64  `yaml:"nearby_score" validate:"gte=0,lte=1"`
	DefaultScore float64  `yaml:"default_score" validate:"gte=0,lte=1"`
}

// TitleStep is one rung of the title ladder
type TitleStep struct {
	Keyword string  `yaml:"keyword" validate:"required"`
	Score   float64 `yaml:"score" validate:"gte=0,lte=1"`
}

// KeywordBonus adds Score when any keyword is present
type KeywordBonus struct {
	Keywords []string `yaml:"keywords" validate:"required,min=1"`
	Score    float64  `yaml:"score" validate:"gte=0,lte=1"`
}

// TitleRules scores the current title and organization
type TitleRules struct {
	Ladder       []TitleStep    `yaml:"ladder" validate:"required,min=1,dive"`
	Bonuses      []KeywordBonus `yaml:"bonuses" validate:"dive"`
	CompanyBonus KeywordBonus   `yaml:"company_bonus"`
}

// TechCategory is a technology with the synonyms that imply it
type TechCategory struct {
	Name     string   `yaml:"name" validate:"required"`
	Keywords []string `yaml:"keywords" validate:"required,min=1"`
}

// TechStackRules estimates stack familiarity from title and organization
type TechStackRules struct {
	Base        float64        `yaml:"base" validate:"gte=0,lte=1"`
	PerCategory float64        `yaml:"per_category" validate:"gte=0,lte=1"`
	Categories  []TechCategory `yaml:"categories" validate:"dive"`
}

// SchoolTier is a set of schools sharing one score
type SchoolTier struct {
	Score   float64  `yaml:"score" validate:"gte=0,lte=1"`
	Schools []string `yaml:"schools"`
}

// EducationRules scores education text
type EducationRules struct {
	Base       float64    `yaml:"base" validate:"gte=0,lte=1"`
	TopTier    SchoolTier `yaml:"top_tier"`
	SecondTier SchoolTier `yaml:"second_tier"`
}

// StartupRules scores startup and founding background
type StartupRules struct {
	Base              float64  `yaml:"base" validate:"gte=0,lte=1"`
	FoundingKeyword   string   `yaml:"founding_keyword"`
	FoundingBonus     float64  `yaml:"founding_bonus" validate:"gte=0,lte=1"`
	Indicators        []string `yaml:"indicators"`
	IndicatorBonus    float64  `yaml:"indicator_bonus" validate:"gte=0,lte=1"`
	BigTech           []string `yaml:"big_tech"`
	SmallCompanyBonus float64  `yaml:"small_company_bonus" validate:"gte=0,lte=1"`
}

// ExperienceRules scores the simulated experience
type ExperienceRules struct {
	Base             float64 `yaml:"base" validate:"gte=0,lte=1"`
	SeniorYears      int     `yaml:"senior_years" validate:"gte=0"`
	SeniorBonus      float64 `yaml:"senior_bonus" validate:"gte=0,lte=1"`
	MidYears         int     `yaml:"mid_years" validate:"gte=0"`
	MidBonus         float64 `yaml:"mid_bonus" validate:"gte=0,lte=1"`
	ProgressionRoles int     `yaml:"progression_roles" validate:"gte=0"`
	ProgressionBonus float64 `yaml:"progression_bonus" validate:"gte=0,lte=1"`
}

// SkillsRules scores the overlap with the required skills
type SkillsRules struct {
	Base               float64 `yaml:"base" validate:"gte=0,lte=1"`
	Span               float64 `yaml:"span" validate:"gte=0,lte=1"`
	EmptyRequiredScore float64 `yaml:"empty_required_score" validate:"gte=0,lte=1"`
}

// LevelRule maps title keywords to a seniority level
type LevelRule struct {
	Level    int      `yaml:"level" validate:"gte=1"`
	Keywords []string `yaml:"keywords" validate:"required,min=1"`
}

// SkillGroup adds Skills when the title or organization contains a keyword
type SkillGroup struct {
	Name          string   `yaml:"name" validate:"required"`
	TitleKeywords []string `yaml:"title_keywords"`
	OrgKeywords   []string `yaml:"org_keywords"`
	Skills        []string `yaml:"skills" validate:"required,min=1"`
}

// ProfileRules drives simulated profile derivation
type ProfileRules struct {
	ReferenceYearDefault int              `yaml:"reference_year_default" validate:"gte=1900"`
	DefaultLevel         int              `yaml:"default_level" validate:"gte=1"`
	Levels               []LevelRule      `yaml:"levels" validate:"dive"`
	CareerPaths          map[int][]string `yaml:"career_paths"`
	BigCompanies         []string         `yaml:"big_companies"`
	BaseSkills           []string         `yaml:"base_skills"`
	SkillGroups          []SkillGroup     `yaml:"skill_groups" validate:"dive"`
}

// DefaultRules returns the embedded rule tables.
func DefaultRules() *Rules {
	r, err := ParseRules(defaultRulesYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded scoring rules are invalid: %v", err))
	}
	return r
}

// LoadRules reads and validates rule tables from a YAML file.
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &RulesError{Message: fmt.Sprintf("failed to read rules file %s", path), Cause: err}
	}
	return ParseRules(data)
}

// ParseRules decodes and validates rule tables.
func ParseRules(data []byte) (*Rules, error) {
	var r Rules
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, &RulesError{Message: "failed to parse rules", Cause: err}
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return &r, nil
}

// Validate checks value ranges and required tables
func (r *Rules) Validate() error {
	if err := validator.New().Struct(r); err != nil {
		return &RulesError{Message: "invalid rules", Cause: err}
	}
	return nil
}
