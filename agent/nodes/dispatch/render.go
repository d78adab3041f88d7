package dispatchnode

import (
	"fmt"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

// Render turns a specialist's structured result into the advice text of a
// DispatchResult.
func Render(resp contractx.SpecialistResponse) (string, error) {
	switch {
	case resp.SkillGap != nil:
		return renderSkillGap(*resp.SkillGap), nil
	case resp.Jobs != nil:
		return renderJobs(resp.Jobs.Jobs), nil
	case resp.Courses != nil:
		return renderCourses(resp.Courses.Courses), nil
	default:
		return "", fmt.Errorf("%w: specialist returned no structured result", contractx.ErrSchemaValidation)
	}
}

func renderSkillGap(r contractx.SkillGapResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target job: %s\n", r.TargetJob)
	fmt.Fprintf(&b, "Your skills: %s\n", joinOrNone(r.UserSkills))
	fmt.Fprintf(&b, "Missing skills: %s\n", joinOrNone(r.MissingSkills))
	fmt.Fprintf(&b, "Recommendation: %s", orNone(r.Recommendation))
	return b.String()
}

func renderJobs(jobs []contractx.JobListing) string {
	if len(jobs) == 0 {
		return "No matching job openings found."
	}
	lines := make([]string, 0, len(jobs)+1)
	lines = append(lines, "Matching job openings:")
	for _, j := range jobs {
		lines = append(lines, fmt.Sprintf("- %s at %s (%s). Requirements: %s",
			j.Title, j.Company, orNone(j.Location), joinOrNone(j.Requirements)))
	}
	return strings.Join(lines, "\n")
}

func renderCourses(courses []contractx.CourseRecommendation) string {
	if len(courses) == 0 {
		return "No course recommendations found."
	}
	lines := make([]string, 0, len(courses)+1)
	lines = append(lines, "Recommended courses:")
	for _, c := range courses {
		lines = append(lines, fmt.Sprintf("- %s: %s on %s (%s)", c.Skill, c.Title, orNone(c.Platform), orNone(c.Link)))
	}
	return strings.Join(lines, "\n")
}

func joinOrNone(items []string) string {
	if len(items) == 0 {
		return "none"
	}
	return strings.Join(items, ", ")
}

func orNone(v string) string {
	if strings.TrimSpace(v) == "" {
		return "none"
	}
	return v
}
