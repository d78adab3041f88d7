package dispatchnode

import (
	"slices"
	"strings"

	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

// intentKeywords are matched as lower-case substrings of the query.
var intentKeywords = map[contractx.IntentTag][]string{
	contractx.IntentSkillGap: {
		"become", "skill gap", "skills gap", "missing skill", "skills do i need",
		"skills i need", "qualif", "what do i need to",
	},
	contractx.IntentJobFinder: {
		"job", "opening", "hiring", "position", "vacanc", "employ", "work as",
	},
	contractx.IntentCourseRecommender: {
		"learn", "course", "study", "tutorial", "training",
	},
}

// Classify returns every specialist the query matches, in IntentPriority
// order, together with the winner. The winner is IntentNone when nothing
// matches. Classify is pure, so a fixed query always routes the same way.
func Classify(query string) (contractx.IntentTag, []contractx.IntentTag) {
	q := strings.ToLower(query)

	matches := make([]contractx.IntentTag, 0, len(contractx.IntentPriority))
	for _, tag := range contractx.IntentPriority {
		if slices.ContainsFunc(intentKeywords[tag], func(kw string) bool {
			return strings.Contains(q, kw)
		}) {
			matches = append(matches, tag)
		}
	}

	if len(matches) == 0 {
		return contractx.IntentNone, matches
	}
	return matches[0], matches
}
