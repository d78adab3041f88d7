package specialist

import (
	"fmt"
	"slices"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

// The model may phrase the answer, but the lists it reports must be the ones
// the tool produced.

func groundSkillGap(out contractx.SkillGapResult, req contractx.ToolRequest, res contractx.ToolResult) (contractx.SkillGapResult, error) {
	missing, ok := res.Result.([]string)
	if !ok {
		return out, unexpectedToolResult(res)
	}
	out.MissingSkills = slices.Clone(missing)

	if job, ok := req.Args["target_job"].(string); ok && strings.TrimSpace(job) != "" {
		out.TargetJob = strings.TrimSpace(job)
	}
	if skills, ok := argStrings(req.Args["user_skills"]); ok {
		out.UserSkills = skills
	}
	return out, nil
}

func groundJobs(out contractx.JobFinderResult, _ contractx.ToolRequest, res contractx.ToolResult) (contractx.JobFinderResult, error) {
	jobs, ok := res.Result.([]contractx.JobListing)
	if !ok {
		return out, unexpectedToolResult(res)
	}
	out.Jobs = slices.Clone(jobs)
	return out, nil
}

func groundCourses(out contractx.CourseRecommenderResult, _ contractx.ToolRequest, res contractx.ToolResult) (contractx.CourseRecommenderResult, error) {
	courses, ok := res.Result.([]contractx.CourseRecommendation)
	if !ok {
		return out, unexpectedToolResult(res)
	}
	out.Courses = slices.Clone(courses)
	return out, nil
}

func unexpectedToolResult(res contractx.ToolResult) error {
	return fmt.Errorf("%w: tool=%s returned %T", contractx.ErrSchemaValidation, res.Tool, res.Result)
}

func argStrings(raw any) ([]string, bool) {
	switch v := raw.(type) {
	case []string:
		return slices.Clone(v), true
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, s)
		}
		return out, true
	default:
		return nil, false
	}
}
