package contract

import (
	statex "github.com/tanpawarit/career-handoff/agent/state"
)

type IntentTag string

const (
	IntentNone              IntentTag = ""
	IntentSkillGap          IntentTag = "skill_gap"
	IntentJobFinder         IntentTag = "job_finder"
	IntentCourseRecommender IntentTag = "course_recommender"
)

// IntentPriority is the tie-break order applied when a query matches more
// than one specialist. Earlier wins.
var IntentPriority = []IntentTag{
	IntentSkillGap,
	IntentJobFinder,
	IntentCourseRecommender,
}

const (
	AgentNameConversation      = "Career Conversation Agent"
	AgentNameSkillGap          = "Skill Gap Analyzer"
	AgentNameJobFinder         = "Job Finder"
	AgentNameCourseRecommender = "Course Recommender"
)

func (t IntentTag) AgentName() string {
	switch t {
	case IntentSkillGap:
		return AgentNameSkillGap
	case IntentJobFinder:
		return AgentNameJobFinder
	case IntentCourseRecommender:
		return AgentNameCourseRecommender
	default:
		return AgentNameConversation
	}
}

type SkillGapResult struct {
	TargetJob      string   `json:"target_job" jsonschema:"minLength=1"`
	UserSkills     []string `json:"user_skills" jsonschema:"description=List of user's current skills"`
	MissingSkills  []string `json:"missing_skills" jsonschema:"description=Skills required for the target job that the user does not have"`
	Recommendation string   `json:"recommendation" jsonschema:"description=Advice on how to acquire the missing skills"`
}

type JobListing struct {
	Title        string   `json:"title" jsonschema:"minLength=1"`
	Company      string   `json:"company" jsonschema:"minLength=1"`
	Location     string   `json:"location"`
	Requirements []string `json:"requirements" jsonschema:"description=Basic requirements for the job"`
}

type JobFinderResult struct {
	Jobs []JobListing `json:"jobs"`
}

type CourseRecommendation struct {
	Skill    string `json:"skill" jsonschema:"minLength=1"`
	Title    string `json:"title" jsonschema:"minLength=1"`
	Platform string `json:"platform"`
	Link     string `json:"link"`
}

type CourseRecommenderResult struct {
	Courses []CourseRecommendation `json:"courses"`
}

// ConversationResponse is the schema of the conversation agent's own answer.
type ConversationResponse struct {
	Agent    string `json:"agent"`
	Response string `json:"response" jsonschema:"minLength=1"`
}

// DispatchResult is the envelope every dispatch produces.
type DispatchResult struct {
	SpecialistName string `json:"specialist_name"`
	ResponseText   string `json:"response_text"`
}

type SpecialistRequest struct {
	Query   string                `json:"query"`
	Session statex.SessionContext `json:"session"`
}

// SpecialistResponse carries the validated structured output. Exactly one of
// the typed fields is set, matching the specialist that produced it.
type SpecialistResponse struct {
	SkillGap *SkillGapResult          `json:"skill_gap,omitempty"`
	Jobs     *JobFinderResult         `json:"jobs,omitempty"`
	Courses  *CourseRecommenderResult `json:"courses,omitempty"`
}

type ToolRequest struct {
	Tool string         `json:"tool"`
	Args map[string]any `json:"args,omitempty"`
}

type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
