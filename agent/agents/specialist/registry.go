package specialist

import (
	"context"
	"fmt"

	einomodel "github.com/cloudwego/eino/components/model"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	llmx "github.com/tanpawarit/career-handoff/agent/llm"
	promptx "github.com/tanpawarit/career-handoff/agent/prompt"
	structuredx "github.com/tanpawarit/career-handoff/agent/structured"
	toolx "github.com/tanpawarit/career-handoff/agent/tool"
)

var (
	skillGapSchema          = structuredx.MustFor[contractx.SkillGapResult]("skill_gap_result")
	jobFinderSchema         = structuredx.MustFor[contractx.JobFinderResult]("job_finder_result")
	courseRecommenderSchema = structuredx.MustFor[contractx.CourseRecommenderResult]("course_recommender_result")
)

// ModelFactory builds the chat model for one agent. IntentNone is the
// conversation agent.
type ModelFactory func(ctx context.Context, tag contractx.IntentTag) (einomodel.ToolCallingChatModel, error)

type registryImpl struct {
	conversation contractx.ConversationAgent
	specialists  map[contractx.IntentTag]contractx.Specialist
}

func (r *registryImpl) Conversation() contractx.ConversationAgent {
	return r.conversation
}

func (r *registryImpl) Specialist(tag contractx.IntentTag) (contractx.Specialist, bool) {
	s, ok := r.specialists[tag]
	return s, ok
}

// NewRegistry builds every agent against the configured provider.
func NewRegistry(ctx context.Context, cfg llmx.Config, tb *toolx.Toolbox) (contractx.Registry, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewRegistryWithModels(ctx, tb, func(ctx context.Context, tag contractx.IntentTag) (einomodel.ToolCallingChatModel, error) {
		modelCfg := cfg.OpenRouterFor(tag)
		m, err := modelCfg.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("%w: create %s model: %v", contractx.ErrConfiguration, tag.AgentName(), err)
		}
		return m, nil
	})
}

func NewRegistryWithModels(ctx context.Context, tb *toolx.Toolbox, models ModelFactory) (contractx.Registry, error) {
	if tb == nil {
		return nil, fmt.Errorf("%w: toolbox is required", contractx.ErrConfiguration)
	}
	if models == nil {
		return nil, fmt.Errorf("%w: model factory is required", contractx.ErrConfiguration)
	}

	prompts := promptx.LoadPromptSet()

	conversationModel, err := models(ctx, contractx.IntentNone)
	if err != nil {
		return nil, err
	}
	conversation, err := newConversation(ctx, conversationModel, prompts.Conversation)
	if err != nil {
		return nil, err
	}

	skillGapModel, err := models(ctx, contractx.IntentSkillGap)
	if err != nil {
		return nil, err
	}
	skillGap, err := newSpecialist(ctx, skillGapDefinition(prompts.SkillGap), skillGapModel, tb)
	if err != nil {
		return nil, err
	}

	jobFinderModel, err := models(ctx, contractx.IntentJobFinder)
	if err != nil {
		return nil, err
	}
	jobFinder, err := newSpecialist(ctx, jobFinderDefinition(prompts.JobFinder), jobFinderModel, tb)
	if err != nil {
		return nil, err
	}

	courseModel, err := models(ctx, contractx.IntentCourseRecommender)
	if err != nil {
		return nil, err
	}
	courses, err := newSpecialist(ctx, courseRecommenderDefinition(prompts.CourseRecommender), courseModel, tb)
	if err != nil {
		return nil, err
	}

	return &registryImpl{
		conversation: conversation,
		specialists: map[contractx.IntentTag]contractx.Specialist{
			contractx.IntentSkillGap:          skillGap,
			contractx.IntentJobFinder:         jobFinder,
			contractx.IntentCourseRecommender: courses,
		},
	}, nil
}

func skillGapDefinition(instructions string) definition[contractx.SkillGapResult] {
	return definition[contractx.SkillGapResult]{
		tag:          contractx.IntentSkillGap,
		instructions: instructions,
		output:       skillGapSchema,
		deriveArgs:   deriveSkillGapArgs,
		ground:       groundSkillGap,
		wrap: func(out contractx.SkillGapResult) contractx.SpecialistResponse {
			return contractx.SpecialistResponse{SkillGap: &out}
		},
	}
}

func jobFinderDefinition(instructions string) definition[contractx.JobFinderResult] {
	return definition[contractx.JobFinderResult]{
		tag:          contractx.IntentJobFinder,
		instructions: instructions,
		output:       jobFinderSchema,
		deriveArgs:   deriveJobFinderArgs,
		ground:       groundJobs,
		wrap: func(out contractx.JobFinderResult) contractx.SpecialistResponse {
			return contractx.SpecialistResponse{Jobs: &out}
		},
	}
}

func courseRecommenderDefinition(instructions string) definition[contractx.CourseRecommenderResult] {
	return definition[contractx.CourseRecommenderResult]{
		tag:          contractx.IntentCourseRecommender,
		instructions: instructions,
		output:       courseRecommenderSchema,
		deriveArgs:   deriveCourseArgs,
		ground:       groundCourses,
		wrap: func(out contractx.CourseRecommenderResult) contractx.SpecialistResponse {
			return contractx.SpecialistResponse{Courses: &out}
		},
	}
}
