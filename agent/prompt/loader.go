package prompt

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	statex "github.com/tanpawarit/career-handoff/agent/state"
)

var (
	//go:embed template/conversation.txt
	conversationRaw string

	//go:embed template/skill_gap.txt
	skillGapRaw string

	//go:embed template/job_finder.txt
	jobFinderRaw string

	//go:embed template/course_recommender.txt
	courseRecommenderRaw string
)

// PromptSet holds the instruction templates, one per agent. They are still
// unrendered: session fields are filled in by Render on every query.
type PromptSet struct {
	Conversation      string
	SkillGap          string
	JobFinder         string
	CourseRecommender string
}

func LoadPromptSet() PromptSet {
	return PromptSet{
		Conversation:      strings.TrimSpace(conversationRaw),
		SkillGap:          strings.TrimSpace(skillGapRaw),
		JobFinder:         strings.TrimSpace(jobFinderRaw),
		CourseRecommender: strings.TrimSpace(courseRecommenderRaw),
	}
}

type renderData struct {
	Skills     string
	Location   string
	CareerGoal string
}

// Render fills a template with the session's skills, location and goal.
// Missing values render as "not provided".
func Render(tmpl string, sc statex.SessionContext) (string, error) {
	t, err := template.New("instructions").Option("missingkey=error").Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("parse instructions: %w", err)
	}

	data := renderData{
		Skills:     orNotProvided(strings.Join(sc.Skills(), ", ")),
		Location:   orNotProvided(sc.Location()),
		CareerGoal: orNotProvided(sc.CareerGoal()),
	}

	var b strings.Builder
	if err := t.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render instructions: %w", err)
	}
	return strings.TrimSpace(b.String()), nil
}

func orNotProvided(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not provided"
	}
	return v
}
