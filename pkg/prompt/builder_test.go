package prompt

import (
	"strings"
	"testing"

	"ideaforge-hq/ideaforge/pkg/ideas"
)

func request() *ideas.IdeaRequest {
	return &ideas.IdeaRequest{
		Domain:      "fitness",
		Audience:    "students",
		Difficulty:  "beginner",
		Mode:        "hackathon",
		Skills:      "Go, React",
		Constraints: "no paid APIs",
		TimeDays:    7,
		IdeaCount:   3,
	}
}

func TestBuild_Deterministic(t *testing.T) {
	req := request()

	sys1, user1 := Build(req)
	sys2, user2 := Build(req)

	if sys1 != sys2 || user1 != user2 {
		t.Error("Build is not deterministic for identical input")
	}
}

func TestSystemInstruction_SchemaContract(t *testing.T) {
	// Field names the model is contractually required to emit.
	required := []string{
		`"ideas"`, `"title"`, `"tagline"`, `"problem"`, `"solution"`,
		`"features"`, `"tech_stack"`, `"architecture"`, `"roadmap"`,
		`"feasibility"`, `"persona"`, `"monetization"`, `"task_breakdown"`,
		`"estimated_hours"`, `"technical"`, `"market"`, `"execution"`,
	}

	for _, field := range required {
		if !strings.Contains(SystemInstruction, field) {
			t.Errorf("system instruction missing schema field %s", field)
		}
	}

	if !strings.Contains(SystemInstruction, "time_days * 8") {
		t.Error("system instruction missing hour/day consistency rule")
	}
	if !strings.Contains(SystemInstruction, "ASCII") {
		t.Error("system instruction missing ASCII diagram rule")
	}
	if !strings.Contains(SystemInstruction, "no markdown fences") {
		t.Error("system instruction missing JSON-only rule")
	}
}

func TestBuildUserInstruction_Interpolation(t *testing.T) {
	user := BuildUserInstruction(request())

	for _, want := range []string{"fitness", "students", "beginner", "hackathon", "Go, React", "no paid APIs"} {
		if !strings.Contains(user, want) {
			t.Errorf("user instruction missing %q:\n%s", want, user)
		}
	}

	if !strings.Contains(user, "Generate 3 distinct") {
		t.Error("user instruction missing idea count")
	}
	if !strings.Contains(user, "7 day(s)") {
		t.Error("user instruction missing time budget")
	}
}

func TestBuildUserInstruction_OmitsEmptyOptionalFields(t *testing.T) {
	req := request()
	req.Skills = ""
	req.Constraints = ""

	user := BuildUserInstruction(req)

	if strings.Contains(user, "skills") || strings.Contains(user, "Constraints") {
		t.Errorf("empty optional fields should be omitted:\n%s", user)
	}
}
