package tool

import (
	"slices"
	"strings"

	catalogx "github.com/tanpawarit/career-handoff/agent/catalog"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
)

const (
	ToolGetMissingSkills = "get_missing_skills"
	ToolFindJobs         = "find_jobs"
	ToolRecommendCourses = "recommend_courses"
)

// Toolbox binds the career tool functions to one catalog. All methods are
// pure with respect to the catalog and never fail.
type Toolbox struct {
	catalog *catalogx.Store
	observe func(tool string)
}

type ToolboxOption func(*Toolbox)

// WithCallObserver registers fn to be told about every executed tool call.
func WithCallObserver(fn func(tool string)) ToolboxOption {
	return func(tb *Toolbox) {
		if fn != nil {
			tb.observe = fn
		}
	}
}

func NewToolbox(catalog *catalogx.Store, opts ...ToolboxOption) *Toolbox {
	tb := &Toolbox{
		catalog: catalog,
		observe: func(string) {},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(tb)
		}
	}
	return tb
}

func (tb *Toolbox) Catalog() *catalogx.Store {
	return tb.catalog
}

// DetectGaps returns the required skills of targetJob that userSkills lacks,
// in catalog order. Membership is an exact string match.
func (tb *Toolbox) DetectGaps(userSkills []string, targetJob string) []string {
	required := tb.catalog.RequiredSkills(targetJob)
	missing := make([]string, 0, len(required))
	for _, skill := range required {
		if !slices.Contains(userSkills, skill) {
			missing = append(missing, skill)
		}
	}
	return missing
}

// MatchJobs keeps catalog listings located at location (case-insensitive; an
// empty location disables the filter) that share at least one requirement
// with userSkills.
func (tb *Toolbox) MatchJobs(userSkills []string, location string) []contractx.JobListing {
	location = strings.TrimSpace(location)
	jobs := tb.catalog.Jobs()
	matched := make([]contractx.JobListing, 0, len(jobs))
	for _, job := range jobs {
		if location != "" && !strings.EqualFold(job.Location, location) {
			continue
		}
		if !intersects(job.Requirements, userSkills) {
			continue
		}
		matched = append(matched, job)
	}
	return matched
}

// RecommendCourses expands each skill, in order, into its catalog courses.
// Skills without a catalog entry contribute nothing.
func (tb *Toolbox) RecommendCourses(missingSkills []string) []contractx.CourseRecommendation {
	recs := make([]contractx.CourseRecommendation, 0, len(missingSkills))
	for _, skill := range missingSkills {
		for _, c := range tb.catalog.Courses(skill) {
			recs = append(recs, contractx.CourseRecommendation{
				Skill:    skill,
				Title:    c.Title,
				Platform: c.Platform,
				Link:     c.Link,
			})
		}
	}
	return recs
}

func intersects(requirements, skills []string) bool {
	for _, r := range requirements {
		if slices.Contains(skills, r) {
			return true
		}
	}
	return false
}
