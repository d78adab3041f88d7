package specialist

import (
	"regexp"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	toolx "github.com/tanpawarit/career-handoff/agent/tool"
)

var goalPrefix = regexp.MustCompile(`(?i)^\s*(?:to\s+)?become\s+(?:an?\s+)?`)

// mentions reports whether phrase appears in text as a whole term,
// case-insensitively. Terms such as "Node.js" end in punctuation, so word
// boundaries are checked by hand instead of with \b.
func mentions(text, phrase string) bool {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return false
	}
	re := regexp.MustCompile(`(?i)(?:^|[^\p{L}\p{N}])` + regexp.QuoteMeta(phrase) + `(?:$|[^\p{L}\p{N}])`)
	return re.MatchString(text)
}

// targetJob picks the role a skill-gap analysis runs against: a catalog role
// named in the query wins, otherwise the career goal without its
// "become a" lead-in.
func targetJob(req contractx.SpecialistRequest, tb *toolx.Toolbox) string {
	for _, role := range tb.Catalog().Roles() {
		if mentions(req.Query, role) {
			return role
		}
	}
	goal := strings.TrimSpace(req.Session.CareerGoal())
	return strings.TrimSpace(goalPrefix.ReplaceAllString(goal, ""))
}

// mentionedSkills returns the catalog skills named in the query, in catalog order.
func mentionedSkills(query string, tb *toolx.Toolbox) []string {
	var out []string
	for _, skill := range tb.Catalog().Skills() {
		if mentions(query, skill) {
			out = append(out, skill)
		}
	}
	return out
}

func deriveSkillGapArgs(req contractx.SpecialistRequest, tb *toolx.Toolbox) map[string]any {
	return map[string]any{
		"user_skills": req.Session.Skills(),
		"target_job":  targetJob(req, tb),
	}
}

func deriveJobFinderArgs(req contractx.SpecialistRequest, _ *toolx.Toolbox) map[string]any {
	args := map[string]any{
		"user_skills": req.Session.Skills(),
	}
	if loc := req.Session.Location(); loc != "" {
		args["location"] = loc
	}
	return args
}

// deriveCourseArgs prefers skills the user asked about; without any it falls
// back to the gaps towards the target job.
func deriveCourseArgs(req contractx.SpecialistRequest, tb *toolx.Toolbox) map[string]any {
	skills := mentionedSkills(req.Query, tb)
	if len(skills) == 0 {
		skills = tb.DetectGaps(req.Session.Skills(), targetJob(req, tb))
	}
	if skills == nil {
		skills = []string{}
	}
	return map[string]any{
		"missing_skills": skills,
	}
}
