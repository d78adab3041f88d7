package llm

import (
	"fmt"
	"strings"
	"time"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	configx "github.com/tanpawarit/career-handoff/pkg/config"
	openrouterx "github.com/tanpawarit/career-handoff/pkg/openrouter"
)

type Config struct {
	BaseURL            string        `envconfig:"BASE_URL" required:"true"`
	APIKey             string        `envconfig:"API_KEY" required:"true"`
	Model              string        `envconfig:"MODEL_NAME" required:"true"`
	MaxCompletionToken int           `envconfig:"MAX_COMPLETION_TOKEN" split_words:"true" default:"2000"`
	Temperature        float32       `envconfig:"TEMPERATURE" split_words:"true" default:"0.5"`
	Timeout            time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	SiteURL            string        `envconfig:"SITE_URL" split_words:"true"`
	SiteName           string        `envconfig:"SITE_NAME" split_words:"true"`
	Preflight          bool          `envconfig:"PREFLIGHT" default:"false"`

	ConversationModel            string  `envconfig:"CONVERSATION_MODEL" split_words:"true"`
	SkillGapModel                string  `envconfig:"SKILL_GAP_MODEL" split_words:"true"`
	JobFinderModel               string  `envconfig:"JOB_FINDER_MODEL" split_words:"true"`
	CourseRecommenderModel       string  `envconfig:"COURSE_RECOMMENDER_MODEL" split_words:"true"`
	ConversationTemperature      float32 `envconfig:"CONVERSATION_TEMPERATURE" split_words:"true" default:"-1"`
	SkillGapTemperature          float32 `envconfig:"SKILL_GAP_TEMPERATURE" split_words:"true" default:"-1"`
	JobFinderTemperature         float32 `envconfig:"JOB_FINDER_TEMPERATURE" split_words:"true" default:"-1"`
	CourseRecommenderTemperature float32 `envconfig:"COURSE_RECOMMENDER_TEMPERATURE" split_words:"true" default:"-1"`
}

// Load reads the provider settings from the environment (and an optional
// dotenv file). Every failure is a configuration error.
func Load() (Config, error) {
	cfg, err := configx.New[Config]("")
	if err != nil {
		return Config{}, fmt.Errorf("%w: %v", contractx.ErrConfiguration, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return *cfg, nil
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("%w: BASE_URL is required", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("%w: API_KEY is required", contractx.ErrConfiguration)
	}
	if strings.TrimSpace(c.Model) == "" {
		return fmt.Errorf("%w: MODEL_NAME is required", contractx.ErrConfiguration)
	}
	return nil
}

// OpenRouterFor resolves the provider settings for one agent. IntentNone is
// the conversation agent.
func (c Config) OpenRouterFor(tag contractx.IntentTag) openrouterx.Config {
	modelName := strings.TrimSpace(c.Model)
	temp := c.Temperature

	override := func(model string, t float32) {
		if v := strings.TrimSpace(model); v != "" {
			modelName = v
		}
		if t >= 0 {
			temp = t
		}
	}

	switch tag {
	case contractx.IntentNone:
		override(c.ConversationModel, c.ConversationTemperature)
	case contractx.IntentSkillGap:
		override(c.SkillGapModel, c.SkillGapTemperature)
	case contractx.IntentJobFinder:
		override(c.JobFinderModel, c.JobFinderTemperature)
	case contractx.IntentCourseRecommender:
		override(c.CourseRecommenderModel, c.CourseRecommenderTemperature)
	}

	maxCompletionToken := c.MaxCompletionToken
	return openrouterx.Config{
		BaseURL:            strings.TrimSpace(c.BaseURL),
		APIKey:             strings.TrimSpace(c.APIKey),
		Model:              modelName,
		MaxCompletionToken: &maxCompletionToken,
		Temperature:        temp,
		Timeout:            c.Timeout,
		SiteURL:            strings.TrimSpace(c.SiteURL),
		SiteName:           strings.TrimSpace(c.SiteName),
	}
}
