package tool

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/schema"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

type Executor func(ctx context.Context, req contractx.ToolRequest) (contractx.ToolResult, error)

// BuildForIntent returns the single tool a specialist owns together with an
// executor that refuses every other tool name.
func BuildForIntent(tag contractx.IntentTag, tb *Toolbox) (*schema.ToolInfo, Executor) {
	info := InfoForIntent(tag)
	if info == nil {
		return nil, DefaultExecutor(tag)
	}
	return info, NewExecutor(tag, tb)
}

func NewExecutor(tag contractx.IntentTag, tb *Toolbox) Executor {
	fallback := DefaultExecutor(tag)
	owned := ""
	if info := InfoForIntent(tag); info != nil {
		owned = info.Name
	}

	return func(ctx context.Context, req contractx.ToolRequest) (contractx.ToolResult, error) {
		if req.Tool != owned {
			return fallback(ctx, req)
		}
		if err := ctx.Err(); err != nil {
			return contractx.ToolResult{}, err
		}

		var (
			result contractx.ToolResult
			err    error
		)
		switch req.Tool {
		case ToolGetMissingSkills:
			result, err = executeGetMissingSkills(tb, req)
		case ToolFindJobs:
			result, err = executeFindJobs(tb, req)
		case ToolRecommendCourses:
			result, err = executeRecommendCourses(tb, req)
		default:
			return fallback(ctx, req)
		}
		if err == nil && result.Error == "" {
			tb.observe(req.Tool)
		}
		return result, err
	}
}

func DefaultExecutor(tag contractx.IntentTag) Executor {
	return func(ctx context.Context, req contractx.ToolRequest) (contractx.ToolResult, error) {
		return contractx.ToolResult{
			Tool:  req.Tool,
			Error: fmt.Sprintf("tool=%s is unavailable for agent=%s", req.Tool, tag.AgentName()),
		}, nil
	}
}

func InfoForIntent(tag contractx.IntentTag) *schema.ToolInfo {
	switch tag {
	case contractx.IntentSkillGap:
		return &schema.ToolInfo{
			Name: ToolGetMissingSkills,
			Desc: "Compares user_skills with the required skills for the target_job and returns the missing skills.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_skills": {Type: schema.Array, ElemInfo: &schema.ParameterInfo{Type: schema.String}, Desc: "The user's current skills", Required: true},
				"target_job":  {Type: schema.String, Desc: "Job title the user is aiming for", Required: true},
			}),
		}
	case contractx.IntentJobFinder:
		return &schema.ToolInfo{
			Name: ToolFindJobs,
			Desc: "Suggests job openings based on the user's skills and optional preferred location.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"user_skills": {Type: schema.Array, ElemInfo: &schema.ParameterInfo{Type: schema.String}, Desc: "The user's current skills", Required: true},
				"location":    {Type: schema.String, Desc: "Preferred job location; omit for any location"},
			}),
		}
	case contractx.IntentCourseRecommender:
		return &schema.ToolInfo{
			Name: ToolRecommendCourses,
			Desc: "Recommends online courses for each missing skill.",
			ParamsOneOf: schema.NewParamsOneOfByParams(map[string]*schema.ParameterInfo{
				"missing_skills": {Type: schema.Array, ElemInfo: &schema.ParameterInfo{Type: schema.String}, Desc: "Skills the user wants to learn", Required: true},
			}),
		}
	default:
		return nil
	}
}
