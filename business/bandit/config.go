package bandit

type Config struct {
	// feedback value assumed at serve time when no real outcome exists
	AssumedSatisfaction float64
	// satisfaction strictly above this counts as a success
	SuccessThreshold float64
	// when false only RecordOutcome updates arm statistics
	AssumeSatisfaction bool
	// rating used for options submitted without one
	DefaultRating int
}

const (
	defaultAssumedSatisfaction = 0.8
	defaultSuccessThreshold    = 0.6
	defaultRating              = 3

	minRating = 1
	maxRating = 5

	minConfidencePercent = 60.0
	maxConfidencePercent = 95.0
)

func DefaultConfig() Config {
	return Config{
		AssumedSatisfaction: defaultAssumedSatisfaction,
		SuccessThreshold:    defaultSuccessThreshold,
		AssumeSatisfaction:  true,
		DefaultRating:       defaultRating,
	}
}

func (cfg Config) withDefaults() Config {
	if cfg.DefaultRating < minRating || cfg.DefaultRating > maxRating {
		cfg.DefaultRating = defaultRating
	}
	return cfg
}
