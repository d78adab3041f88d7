package specialist

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	catalogx "github.com/tanpawarit/career-handoff/agent/catalog"
	contractx "github.com/tanpawarit/career-handoff/agent/contract"
	statex "github.com/tanpawarit/career-handoff/agent/state"
	toolx "github.com/tanpawarit/career-handoff/agent/tool"
)

type fakeToolCallingModel struct {
	mu        sync.Mutex
	responses []*schema.Message
	err       error
	idx       int
	inputs    [][]*schema.Message
	tools     []*schema.ToolInfo
}

func (f *fakeToolCallingModel) Generate(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, input)
	if f.err != nil {
		return nil, f.err
	}
	if f.idx >= len(f.responses) {
		return nil, errors.New("no fake response left")
	}
	msg := f.responses[f.idx]
	f.idx++
	return msg, nil
}

func (f *fakeToolCallingModel) Stream(ctx context.Context, input []*schema.Message, opts ...einomodel.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("stream not implemented in fake model")
}

func (f *fakeToolCallingModel) WithTools(tools []*schema.ToolInfo) (einomodel.ToolCallingChatModel, error) {
	f.mu.Lock()
	f.tools = tools
	f.mu.Unlock()
	return f, nil
}

func (f *fakeToolCallingModel) lastUserInput(t *testing.T) string {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.inputs) == 0 {
		t.Fatal("model was never called")
	}
	msgs := f.inputs[len(f.inputs)-1]
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == schema.User {
			return msgs[i].Content
		}
	}
	t.Fatal("no user message in model input")
	return ""
}

func toolCall(name, args string) *schema.Message {
	return &schema.Message{
		Role: schema.Assistant,
		ToolCalls: []schema.ToolCall{
			{
				ID:   "call_1",
				Type: "function",
				Function: schema.FunctionCall{
					Name:      name,
					Arguments: args,
				},
			},
		},
	}
}

func noToolCall() *schema.Message {
	return &schema.Message{Role: schema.Assistant}
}

func testSession(t *testing.T) statex.SessionContext {
	t.Helper()
	sc, err := statex.NewSessionContext([]string{"Python", "SQL"}, "New York", "Become a Data Scientist")
	if err != nil {
		t.Fatalf("NewSessionContext() error = %v", err)
	}
	return sc
}

type callCounter struct {
	mu    sync.Mutex
	calls []string
}

func (c *callCounter) observe(tool string) {
	c.mu.Lock()
	c.calls = append(c.calls, tool)
	c.mu.Unlock()
}

func (c *callCounter) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string{}, c.calls...)
}

func newTestToolbox(counter *callCounter) *toolx.Toolbox {
	return toolx.NewToolbox(catalogx.Default(), toolx.WithCallObserver(counter.observe))
}

func newSkillGap(t *testing.T, fake *fakeToolCallingModel, tb *toolx.Toolbox) *specialistImpl[contractx.SkillGapResult] {
	t.Helper()
	spec, err := newSpecialist(context.Background(), skillGapDefinition("skill gap for {{ .Skills }}"), fake, tb)
	if err != nil {
		t.Fatalf("newSpecialist() error = %v", err)
	}
	return spec
}

const skillGapJSON = `{"target_job":"Data Analyst","user_skills":["Python","SQL"],"missing_skills":["Pandas","Data Visualization","Statistics"],"recommendation":"Take a Pandas course."}`

func TestSpecialistToolCallFromModel(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			toolCall(toolx.ToolGetMissingSkills, `{"user_skills":["Python","SQL"],"target_job":"Data Analyst"}`),
			{Role: schema.Assistant, Content: skillGapJSON},
		},
	}
	counter := &callCounter{}
	spec := newSkillGap(t, fake, newTestToolbox(counter))

	resp, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need to become a Data Analyst?",
		Session: testSession(t),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.SkillGap == nil {
		t.Fatal("expected skill gap result")
	}
	if resp.Jobs != nil || resp.Courses != nil {
		t.Fatalf("unexpected extra results: %#v", resp)
	}
	if resp.SkillGap.TargetJob != "Data Analyst" {
		t.Fatalf("unexpected target job: %s", resp.SkillGap.TargetJob)
	}
	if len(resp.SkillGap.MissingSkills) != 3 {
		t.Fatalf("unexpected missing skills: %#v", resp.SkillGap.MissingSkills)
	}

	if calls := counter.snapshot(); len(calls) != 1 || calls[0] != toolx.ToolGetMissingSkills {
		t.Fatalf("unexpected tool calls: %#v", calls)
	}
	if len(fake.tools) != 1 || fake.tools[0].Name != toolx.ToolGetMissingSkills {
		t.Fatalf("model bound to unexpected tools: %#v", fake.tools)
	}

	payload := fake.lastUserInput(t)
	if !strings.Contains(payload, `"tool_result":["Pandas","Data Visualization","Statistics"]`) {
		t.Fatalf("finalize payload misses tool result: %s", payload)
	}
}

func TestSpecialistDerivesArgsWithoutToolCall(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			noToolCall(),
			{Role: schema.Assistant, Content: skillGapJSON},
		},
	}
	counter := &callCounter{}
	spec := newSkillGap(t, fake, newTestToolbox(counter))

	_, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need to become a Data Analyst?",
		Session: testSession(t),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if calls := counter.snapshot(); len(calls) != 1 {
		t.Fatalf("expected exactly one tool call, got %#v", calls)
	}
	payload := fake.lastUserInput(t)
	if !strings.Contains(payload, `"target_job":"data analyst"`) {
		t.Fatalf("expected target job derived from query: %s", payload)
	}
	if !strings.Contains(payload, `"tool_result":["Pandas","Data Visualization","Statistics"]`) {
		t.Fatalf("finalize payload misses tool result: %s", payload)
	}
}

func TestSpecialistRejectsForeignTool(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			toolCall(toolx.ToolFindJobs, `{"user_skills":["Python"]}`),
		},
	}
	counter := &callCounter{}
	spec := newSkillGap(t, fake, newTestToolbox(counter))

	_, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need to become a Data Analyst?",
		Session: testSession(t),
	})
	if !errors.Is(err, contractx.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if calls := counter.snapshot(); len(calls) != 0 {
		t.Fatalf("foreign tool must not run: %#v", calls)
	}
}

func TestSpecialistInvalidToolArgs(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			toolCall(toolx.ToolGetMissingSkills, `{"user_skills":"Python"}`),
		},
	}
	spec := newSkillGap(t, fake, newTestToolbox(&callCounter{}))

	_, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need to become a Data Analyst?",
		Session: testSession(t),
	})
	if !errors.Is(err, contractx.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestSpecialistOutputSchemaFailure(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			noToolCall(),
			{Role: schema.Assistant, Content: `{"target_job":"Data Analyst","missing_skills":["Pandas"]}`},
		},
	}
	spec := newSkillGap(t, fake, newTestToolbox(&callCounter{}))

	_, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need to become a Data Analyst?",
		Session: testSession(t),
	})
	if !errors.Is(err, contractx.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
	if errors.Is(err, contractx.ErrProvider) {
		t.Fatalf("schema failure must not be reported as provider error: %v", err)
	}
}

func TestSpecialistProviderFailure(t *testing.T) {
	t.Parallel()

	upstream := errors.New("upstream unavailable")
	fake := &fakeToolCallingModel{err: upstream}
	spec := newSkillGap(t, fake, newTestToolbox(&callCounter{}))

	_, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need to become a Data Analyst?",
		Session: testSession(t),
	})
	if !errors.Is(err, contractx.ErrProvider) {
		t.Fatalf("expected ErrProvider, got %v", err)
	}
}

func TestSpecialistRejectsEmptyQuery(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{}
	spec := newSkillGap(t, fake, newTestToolbox(&callCounter{}))

	_, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "   ",
		Session: testSession(t),
	})
	if !errors.Is(err, contractx.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if len(fake.inputs) != 0 {
		t.Fatal("model must not be called for an invalid request")
	}
}

func TestCourseRecommenderUsesSkillsFromQuery(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			noToolCall(),
			{Role: schema.Assistant, Content: `{"courses":[{"skill":"Machine Learning","title":"Machine Learning","platform":"Coursera","link":"https://www.coursera.org/learn/machine-learning"}]}`},
		},
	}
	counter := &callCounter{}
	spec, err := newSpecialist(context.Background(), courseRecommenderDefinition("courses"), fake, newTestToolbox(counter))
	if err != nil {
		t.Fatalf("newSpecialist() error = %v", err)
	}

	resp, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "I want to learn Machine Learning",
		Session: testSession(t),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Courses == nil || len(resp.Courses.Courses) != 1 {
		t.Fatalf("unexpected courses: %#v", resp.Courses)
	}

	payload := fake.lastUserInput(t)
	if !strings.Contains(payload, `"missing_skills":["Machine Learning"]`) {
		t.Fatalf("expected skills taken from query: %s", payload)
	}
	if !strings.Contains(payload, "https://www.coursera.org/learn/machine-learning") {
		t.Fatalf("finalize payload misses tool result: %s", payload)
	}
}

func TestConversationAnswer(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, Content: "```json\n{\"agent\":\"Someone Else\",\"response\":\"Build a portfolio.\"}\n```"},
		},
	}
	conv, err := newConversation(context.Background(), fake, "advisor for {{ .CareerGoal }}")
	if err != nil {
		t.Fatalf("newConversation() error = %v", err)
	}

	answer, err := conv.Answer(context.Background(), contractx.SpecialistRequest{
		Query:   "How should I prepare for a career change?",
		Session: testSession(t),
	})
	if err != nil {
		t.Fatalf("Answer() error = %v", err)
	}
	if answer != "Build a portfolio." {
		t.Fatalf("unexpected answer: %q", answer)
	}
}

func TestConversationEmptyResponseIsSchemaError(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			{Role: schema.Assistant, Content: `{"agent":"x","response":""}`},
		},
	}
	conv, err := newConversation(context.Background(), fake, "advisor")
	if err != nil {
		t.Fatalf("newConversation() error = %v", err)
	}

	_, err = conv.Answer(context.Background(), contractx.SpecialistRequest{
		Query:   "How should I prepare for a career change?",
		Session: testSession(t),
	})
	if !errors.Is(err, contractx.ErrSchemaValidation) {
		t.Fatalf("expected ErrSchemaValidation, got %v", err)
	}
}

func TestRegistryWithModels(t *testing.T) {
	t.Parallel()

	var tags []contractx.IntentTag
	reg, err := NewRegistryWithModels(context.Background(), newTestToolbox(&callCounter{}),
		func(ctx context.Context, tag contractx.IntentTag) (einomodel.ToolCallingChatModel, error) {
			tags = append(tags, tag)
			return &fakeToolCallingModel{}, nil
		})
	if err != nil {
		t.Fatalf("NewRegistryWithModels() error = %v", err)
	}
	if len(tags) != 4 {
		t.Fatalf("expected four models, got %#v", tags)
	}
	if reg.Conversation() == nil {
		t.Fatal("expected conversation agent")
	}
	for _, tag := range contractx.IntentPriority {
		spec, ok := reg.Specialist(tag)
		if !ok {
			t.Fatalf("missing specialist for %s", tag)
		}
		if spec.Name() != tag.AgentName() {
			t.Fatalf("unexpected name %q for %s", spec.Name(), tag)
		}
	}
	if _, ok := reg.Specialist(contractx.IntentNone); ok {
		t.Fatal("IntentNone must not resolve to a specialist")
	}
}

func TestRegistryModelFactoryError(t *testing.T) {
	t.Parallel()

	_, err := NewRegistryWithModels(context.Background(), newTestToolbox(&callCounter{}),
		func(ctx context.Context, tag contractx.IntentTag) (einomodel.ToolCallingChatModel, error) {
			return nil, contractx.ErrConfiguration
		})
	if !errors.Is(err, contractx.ErrConfiguration) {
		t.Fatalf("expected ErrConfiguration, got %v", err)
	}
}

func TestSkillGapWithoutTargetJobYieldsNoGaps(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			noToolCall(),
			{Role: schema.Assistant, Content: `{"target_job":"your next role","user_skills":["Python"],"missing_skills":["Rust"],"recommendation":"Pick a target role first."}`},
		},
	}
	counter := &callCounter{}
	spec := newSkillGap(t, fake, newTestToolbox(counter))

	sc, err := statex.NewSessionContext([]string{"Python"}, "New York", "")
	if err != nil {
		t.Fatalf("NewSessionContext() error = %v", err)
	}

	resp, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need?",
		Session: sc,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.SkillGap == nil {
		t.Fatal("expected skill gap result")
	}
	if len(resp.SkillGap.MissingSkills) != 0 {
		t.Fatalf("expected no missing skills, got %#v", resp.SkillGap.MissingSkills)
	}
	if calls := counter.snapshot(); len(calls) != 1 {
		t.Fatalf("expected the tool to run once, got %#v", calls)
	}
	if payload := fake.lastUserInput(t); !strings.Contains(payload, `"tool_result":[]`) {
		t.Fatalf("expected empty tool result in payload: %s", payload)
	}
}

func TestJobFinderKeepsToolListings(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			noToolCall(),
			{Role: schema.Assistant, Content: `{"jobs":[{"title":"Wizard","company":"Hogwarts","location":"New York","requirements":["Python"]}]}`},
		},
	}
	spec, err := newSpecialist(context.Background(), jobFinderDefinition("jobs"), fake, newTestToolbox(&callCounter{}))
	if err != nil {
		t.Fatalf("newSpecialist() error = %v", err)
	}

	resp, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "Can you help me find jobs?",
		Session: testSession(t),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Jobs == nil || len(resp.Jobs.Jobs) != 1 {
		t.Fatalf("unexpected jobs: %#v", resp.Jobs)
	}
	job := resp.Jobs.Jobs[0]
	if job.Title != "Data Analyst" || job.Company != "TechCorp" {
		t.Fatalf("expected the catalog listing, got %#v", job)
	}
}

func TestSkillGapKeepsToolGaps(t *testing.T) {
	t.Parallel()

	fake := &fakeToolCallingModel{
		responses: []*schema.Message{
			toolCall(toolx.ToolGetMissingSkills, `{"user_skills":["Python","SQL"],"target_job":"Data Analyst"}`),
			{Role: schema.Assistant, Content: `{"target_job":"Analyst","user_skills":["Go"],"missing_skills":["Cobol"],"recommendation":"Study."}`},
		},
	}
	spec := newSkillGap(t, fake, newTestToolbox(&callCounter{}))

	resp, err := spec.Run(context.Background(), contractx.SpecialistRequest{
		Query:   "What skills do I need to become a Data Analyst?",
		Session: testSession(t),
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := resp.SkillGap
	if got.TargetJob != "Data Analyst" {
		t.Fatalf("unexpected target job: %q", got.TargetJob)
	}
	if strings.Join(got.UserSkills, ",") != "Python,SQL" {
		t.Fatalf("unexpected user skills: %#v", got.UserSkills)
	}
	if strings.Join(got.MissingSkills, ",") != "Pandas,Data Visualization,Statistics" {
		t.Fatalf("unexpected missing skills: %#v", got.MissingSkills)
	}
	if got.Recommendation != "Study." {
		t.Fatalf("recommendation must stay the model's: %q", got.Recommendation)
	}
}
