package runner

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"QUERY_TIMEOUT", "USER_SKILLS", "USER_LOCATION", "CAREER_GOAL", "METRICS_FILE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Second, cfg.QueryTimeout)
	assert.Equal(t, []string{"Python", "SQL"}, cfg.Skills)
	assert.Equal(t, "New York", cfg.Location)
	assert.Equal(t, "Become a Data Scientist", cfg.CareerGoal)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("QUERY_TIMEOUT", "5s")
	t.Setenv("USER_SKILLS", "HTML,CSS")
	t.Setenv("USER_LOCATION", "Boston")
	t.Setenv("CAREER_GOAL", "Become a Web Developer")
	t.Setenv("METRICS_FILE", "/tmp/career.prom")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeout)
	assert.Equal(t, []string{"HTML", "CSS"}, cfg.Skills)
	assert.Equal(t, "Boston", cfg.Location)
	assert.Equal(t, "/tmp/career.prom", cfg.MetricsFile)
}

func TestLoadConfigRejectsNegativeTimeout(t *testing.T) {
	t.Setenv("QUERY_TIMEOUT", "-1s")

	_, err := LoadConfig()
	assert.ErrorIs(t, err, contractx.ErrConfiguration)
}
