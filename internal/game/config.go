package game

import "time"

const (
	minRoundSeconds   = 30
	maxRoundSeconds   = 600
	minVotingSeconds  = 10
	maxVotingSeconds  = 300
	minResultsSeconds = 5
	maxResultsSeconds = 60
	minTotalRounds    = 1
	maxTotalRounds    = 20
	minCategories     = 3
	maxCategories     = 10
)

// Config holds the game parameters for one session. Values are always kept
// inside the documented bounds; construct through DefaultConfig and mutate
// through Apply so clamping cannot be skipped.
type Config struct {
	RoundSeconds       int
	VotingSeconds      int
	ResultsSeconds     int
	TotalRounds        int
	CategoriesPerRound int
	Categories         []string
}

func DefaultConfig() Config {
	return Config{
		RoundSeconds:       60,
		VotingSeconds:      45,
		ResultsSeconds:     10,
		TotalRounds:        5,
		CategoriesPerRound: 5,
	}
}

func (c Config) RoundDuration() time.Duration {
	return time.Duration(c.RoundSeconds) * time.Second
}

func (c Config) VotingDuration() time.Duration {
	return time.Duration(c.VotingSeconds) * time.Second
}

func (c Config) ResultsDuration() time.Duration {
	return time.Duration(c.ResultsSeconds) * time.Second
}

// ConfigUpdate is a partial config change; nil fields are left untouched.
type ConfigUpdate struct {
	RoundSeconds       *int
	VotingSeconds      *int
	ResultsSeconds     *int
	TotalRounds        *int
	CategoriesPerRound *int
	Categories         []string
}

// Apply merges an update into the config, clamping every value to its
// documented bounds.
func (c *Config) Apply(update ConfigUpdate) {
	if update.RoundSeconds != nil {
		c.RoundSeconds = clamp(*update.RoundSeconds, minRoundSeconds, maxRoundSeconds)
	}
	if update.VotingSeconds != nil {
		c.VotingSeconds = clamp(*update.VotingSeconds, minVotingSeconds, maxVotingSeconds)
	}
	if update.ResultsSeconds != nil {
		c.ResultsSeconds = clamp(*update.ResultsSeconds, minResultsSeconds, maxResultsSeconds)
	}
	if update.TotalRounds != nil {
		c.TotalRounds = clamp(*update.TotalRounds, minTotalRounds, maxTotalRounds)
	}
	if update.CategoriesPerRound != nil {
		c.CategoriesPerRound = clamp(*update.CategoriesPerRound, minCategories, maxCategories)
	}
	if update.Categories != nil {
		c.Categories = normalizeCategoryList(update.Categories)
	}
}

// Clamp forces every field back inside its bounds; used when hydrating a
// config from a snapshot or the environment.
func (c *Config) Clamp() {
	c.RoundSeconds = clamp(c.RoundSeconds, minRoundSeconds, maxRoundSeconds)
	c.VotingSeconds = clamp(c.VotingSeconds, minVotingSeconds, maxVotingSeconds)
	c.ResultsSeconds = clamp(c.ResultsSeconds, minResultsSeconds, maxResultsSeconds)
	c.TotalRounds = clamp(c.TotalRounds, minTotalRounds, maxTotalRounds)
	c.CategoriesPerRound = clamp(c.CategoriesPerRound, minCategories, maxCategories)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

func normalizeCategoryList(categories []string) []string {
	seen := make(map[string]struct{}, len(categories))
	cleaned := make([]string, 0, len(categories))
	for _, category := range categories {
		key := normalizeKey(category)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		cleaned = append(cleaned, category)
	}
	return cleaned
}
