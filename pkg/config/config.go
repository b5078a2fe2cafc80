package config

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var validate = validator.New()

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config is the capability record the core reads its tunables from. It
// mirrors the Config interface of the specification: every option the
// detector, evaluator, resolver, selector and placer consult lives here,
// loaded once per process and passed down by reference.
type Config struct {
	Env string
	Log LogConfig

	Calendar  CalendarConfig
	Detector  DetectorConfig
	Fitness   FitnessConfig
	Resolver  ResolverConfig
	Selector  SelectorConfig
	Placement PlacementConfig
	Metrics   MetricsConfig
}

// MetricsConfig governs the Prometheus scrape endpoint an external host
// can serve from pkg/metrics.Session.Handler().
type MetricsConfig struct {
	Addr string
}

type LogConfig struct {
	Level  string
	Format string
}

// CalendarConfig governs the period grid (C1).
type CalendarConfig struct {
	PeriodsPerDay int    `validate:"gt=0,lte=12"`
	LunchStart    string `validate:"required"`
	LunchEnd      string `validate:"required"`
}

// DetectorConfig governs conflict detection thresholds (C4).
type DetectorConfig struct {
	MaxPeriodsPerDay int `validate:"gt=0,lte=12"`
	MinPrepMinutes   int `validate:"gte=0"`
	TravelThreshold  int `validate:"gte=0"`
}

// FitnessConfig carries the weighted-penalty table for C5.
type FitnessConfig struct {
	ConstraintWeights map[string]float64
}

// ResolverConfig governs suggestion confidence blending and the
// auto-resolve loop (C6).
type ResolverConfig struct {
	DefaultSuccessRates      map[string]float64
	AutoApplyConfidenceThres float64 `validate:"gte=0,lte=100"`
	MaxAutoResolveIterations int     `validate:"gt=0"`
}

// SelectorConfig carries the per-grade course tables for C7.
type SelectorConfig struct {
	CoreElectiveCountsByGrade     map[string][2]int
	GradeCoursePatterns           map[string]map[string][]string
	GradeElectiveCategoryPatterns map[string]map[string][]string
	CourseSequences               map[string][]string
	PEKeywords                    []string
	MedicalPERestrictions         []string
	RequiredCredits               float64
}

// PlacementConfig governs singleton placement and balancing (C8).
type PlacementConfig struct {
	PeriodsPerDay      int
	PeriodPreference   []int
	BalanceMaxIters    int
	BalanceMinSections int
}

// Load reads process configuration from .env/env vars with the same
// env-first viper convention the rest of the corpus uses, falling back to
// the defaults spec.md §6 calls out.
func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{
		Env: v.GetString("ENV"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Calendar: CalendarConfig{
			PeriodsPerDay: v.GetInt("CALENDAR_PERIODS_PER_DAY"),
			LunchStart:    v.GetString("CALENDAR_LUNCH_START"),
			LunchEnd:      v.GetString("CALENDAR_LUNCH_END"),
		},
		Detector: DetectorConfig{
			MaxPeriodsPerDay: v.GetInt("DETECTOR_MAX_PERIODS_PER_DAY"),
			MinPrepMinutes:   v.GetInt("DETECTOR_MIN_PREP_MINUTES"),
			TravelThreshold:  v.GetInt("DETECTOR_TRAVEL_THRESHOLD"),
		},
		Fitness: FitnessConfig{
			ConstraintWeights: DefaultConstraintWeights(),
		},
		Resolver: ResolverConfig{
			DefaultSuccessRates:      DefaultSuccessRates(),
			AutoApplyConfidenceThres: v.GetFloat64("RESOLVER_AUTO_APPLY_CONFIDENCE"),
			MaxAutoResolveIterations: v.GetInt("RESOLVER_MAX_ITERATIONS"),
		},
		Selector: SelectorConfig{
			CoreElectiveCountsByGrade:     DefaultCoreElectiveCounts(),
			GradeCoursePatterns:           DefaultGradeCoursePatterns(),
			GradeElectiveCategoryPatterns: DefaultGradeElectiveCategoryPatterns(),
			CourseSequences:               DefaultCourseSequences(),
			PEKeywords:                    splitAndTrim(v.GetString("SELECTOR_PE_KEYWORDS")),
			MedicalPERestrictions:         splitAndTrim(v.GetString("SELECTOR_MEDICAL_PE_KEYWORDS")),
			RequiredCredits:               v.GetFloat64("SELECTOR_REQUIRED_CREDITS"),
		},
		Placement: PlacementConfig{
			PeriodsPerDay:      v.GetInt("PLACEMENT_PERIODS_PER_DAY"),
			PeriodPreference:   DefaultPeriodPreference(),
			BalanceMaxIters:    v.GetInt("PLACEMENT_BALANCE_MAX_ITERS"),
			BalanceMinSections: v.GetInt("PLACEMENT_BALANCE_MIN_SECTIONS"),
		},
		Metrics: MetricsConfig{
			Addr: v.GetString("METRICS_ADDR"),
		},
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("CALENDAR_PERIODS_PER_DAY", 8)
	v.SetDefault("CALENDAR_LUNCH_START", "11:30")
	v.SetDefault("CALENDAR_LUNCH_END", "13:00")

	v.SetDefault("DETECTOR_MAX_PERIODS_PER_DAY", 6)
	v.SetDefault("DETECTOR_MIN_PREP_MINUTES", 50)
	v.SetDefault("DETECTOR_TRAVEL_THRESHOLD", 3)

	v.SetDefault("RESOLVER_AUTO_APPLY_CONFIDENCE", 70)
	v.SetDefault("RESOLVER_MAX_ITERATIONS", 200)

	v.SetDefault("SELECTOR_PE_KEYWORDS", "pe,physical education,gym,fitness")
	v.SetDefault("SELECTOR_MEDICAL_PE_KEYWORDS", "pe restriction,no physical education,physical activity restriction,asthma,heart condition,injury")
	v.SetDefault("SELECTOR_REQUIRED_CREDITS", 24)

	v.SetDefault("PLACEMENT_PERIODS_PER_DAY", 8)
	v.SetDefault("PLACEMENT_BALANCE_MAX_ITERS", 100)
	v.SetDefault("PLACEMENT_BALANCE_MIN_SECTIONS", 2)

	v.SetDefault("METRICS_ADDR", ":9090")
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
