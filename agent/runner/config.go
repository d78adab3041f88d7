package runner

import (
	"fmt"
	"time"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	statex "github.com/tanpawarit/career-handoff/agent/state"
	configx "github.com/tanpawarit/career-handoff/pkg/config"
)

type Config struct {
	statex.Profile

	QueryTimeout time.Duration `envconfig:"QUERY_TIMEOUT" default:"60s"`
	MetricsFile  string        `envconfig:"METRICS_FILE"`
}

func LoadConfig() (Config, error) {
	cfg, err := configx.New[Config]("")
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", contractx.ErrConfiguration, err)
	}
	if cfg.QueryTimeout <= 0 {
		return Config{}, fmt.Errorf("%w: QUERY_TIMEOUT must be positive", contractx.ErrConfiguration)
	}
	return *cfg, nil
}

// DefaultQueries is the example batch the process runs.
var DefaultQueries = []string{
	"I want to become a data scientist",
	"Can you help me find jobs?",
	"How do I learn SQL and Pandas?",
	"What should I do next in my career?",
}
