package tool

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

func executeGetMissingSkills(tb *Toolbox, req contractx.ToolRequest) (contractx.ToolResult, error) {
	skills, err := stringSliceArg(req.Args, "user_skills", true)
	if err != nil {
		return contractx.ToolResult{Tool: req.Tool, Error: err.Error()}, nil
	}
	// An empty or unknown role is a lookup miss: DetectGaps yields no gaps.
	targetJob, err := stringArg(req.Args, "target_job", false)
	if err != nil {
		return contractx.ToolResult{Tool: req.Tool, Error: err.Error()}, nil
	}
	return contractx.ToolResult{Tool: req.Tool, Result: tb.DetectGaps(skills, targetJob)}, nil
}

func executeFindJobs(tb *Toolbox, req contractx.ToolRequest) (contractx.ToolResult, error) {
	skills, err := stringSliceArg(req.Args, "user_skills", true)
	if err != nil {
		return contractx.ToolResult{Tool: req.Tool, Error: err.Error()}, nil
	}
	location, err := stringArg(req.Args, "location", false)
	if err != nil {
		return contractx.ToolResult{Tool: req.Tool, Error: err.Error()}, nil
	}
	return contractx.ToolResult{Tool: req.Tool, Result: tb.MatchJobs(skills, location)}, nil
}

func executeRecommendCourses(tb *Toolbox, req contractx.ToolRequest) (contractx.ToolResult, error) {
	skills, err := stringSliceArg(req.Args, "missing_skills", true)
	if err != nil {
		return contractx.ToolResult{Tool: req.Tool, Error: err.Error()}, nil
	}
	return contractx.ToolResult{Tool: req.Tool, Result: tb.RecommendCourses(skills)}, nil
}

func stringArg(args map[string]any, key string, required bool) (string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		if required {
			return "", fmt.Errorf("%s is required", key)
		}
		return "", nil
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string", key)
	}
	s = strings.TrimSpace(s)
	if required && s == "" {
		return "", fmt.Errorf("%s is empty", key)
	}
	return s, nil
}

// stringSliceArg accepts both []string (arguments built in-process) and
// []any (arguments decoded from model JSON).
func stringSliceArg(args map[string]any, key string, required bool) ([]string, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		if required {
			return nil, fmt.Errorf("%s is required", key)
		}
		return []string{}, nil
	}

	switch v := raw.(type) {
	case []string:
		return append([]string{}, v...), nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string", key, i)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be an array of strings", key)
	}
}
