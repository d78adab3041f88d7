package prompt

import (
	"strings"
	"testing"

	statex "github.com/tanpawarit/career-handoff/agent/state"
)

func TestLoadPromptSetNonEmpty(t *testing.T) {
	t.Parallel()

	set := LoadPromptSet()
	for name, p := range map[string]string{
		"conversation":       set.Conversation,
		"skill_gap":          set.SkillGap,
		"job_finder":         set.JobFinder,
		"course_recommender": set.CourseRecommender,
	} {
		if p == "" {
			t.Fatalf("prompt %s is empty", name)
		}
	}
}

func TestRenderFillsSessionFields(t *testing.T) {
	t.Parallel()

	sc, err := statex.NewSessionContext([]string{"Python", "SQL"}, "New York", "Become a Data Scientist")
	if err != nil {
		t.Fatalf("NewSessionContext() error = %v", err)
	}

	out, err := Render(LoadPromptSet().Conversation, sc)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	for _, want := range []string{
		"The user's current skills are: Python, SQL",
		"The user's location is: New York",
		"The user's career goal is: Become a Data Scientist",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered prompt missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "{{") {
		t.Fatalf("rendered prompt still contains template actions:\n%s", out)
	}
}

func TestRenderEmptyContext(t *testing.T) {
	t.Parallel()

	out, err := Render("skills={{ .Skills }} location={{ .Location }}", statex.SessionContext{})
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if out != "skills=not provided location=not provided" {
		t.Fatalf("unexpected render: %q", out)
	}
}

func TestRenderUnknownField(t *testing.T) {
	t.Parallel()

	_, err := Render("{{ .Salary }}", statex.SessionContext{})
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	t.Parallel()

	sc, err := statex.NewSessionContext([]string{"Go"}, "Remote", "Ship it")
	if err != nil {
		t.Fatalf("NewSessionContext() error = %v", err)
	}
	tmpl := LoadPromptSet().JobFinder
	a, _ := Render(tmpl, sc)
	b, _ := Render(tmpl, sc)
	if a != b {
		t.Fatal("render must be deterministic")
	}
}
