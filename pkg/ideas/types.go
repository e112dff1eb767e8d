package ideas

// RawIdeaRequest is the inbound request body as decoded from JSON.
//
// Fields are deliberately untyped: clients send arbitrary JSON and the
// sanitizer degrades anything that is not the expected type instead of
// failing the decode. A request with a numeric "domain" still parses; the
// field simply sanitizes to an empty string and fails validation later.
type RawIdeaRequest struct {
	// Domain is the problem space the ideas should target (e.g. "fitness").
	Domain interface{} `json:"domain"`

	// Audience is the intended user group (e.g. "students").
	Audience interface{} `json:"audience"`

	// Difficulty is the desired build difficulty. Must match one of the
	// enumerated difficulty levels (case-insensitive).
	Difficulty interface{} `json:"difficulty"`

	// Mode is the project context (hackathon, startup, ...). Must match one
	// of the enumerated modes (case-insensitive).
	Mode interface{} `json:"mode"`

	// Skills optionally lists technologies the requester already knows.
	Skills interface{} `json:"skills"`

	// Constraints optionally lists restrictions (budget, platform, ...).
	Constraints interface{} `json:"constraints"`

	// TimeAvailableDays is how many days the requester can spend building.
	TimeAvailableDays interface{} `json:"time_available_days"`

	// MultiIdeaCount is how many ideas to generate in one call.
	MultiIdeaCount interface{} `json:"multi_idea_count"`
}

// IdeaRequest is the sanitized form of a RawIdeaRequest.
//
// Every string field has been through SanitizeString and every numeric
// field through ClampInt, so all values are bounded and safe to
// interpolate into a prompt. An IdeaRequest is request-scoped: it is
// discarded once the prompt has been built.
type IdeaRequest struct {
	Domain      string
	Audience    string
	Difficulty  string
	Mode        string
	Skills      string
	Constraints string

	// TimeDays is clamped to [1, 365], defaulting to 7.
	TimeDays int

	// IdeaCount is clamped to [1, 5], defaulting to 3.
	IdeaCount int
}

// Sanitize converts a raw request into its bounded, typed form.
// It never fails; validation of the result is a separate step.
func (raw *RawIdeaRequest) Sanitize() *IdeaRequest {
	return &IdeaRequest{
		Domain:      SanitizeString(raw.Domain),
		Audience:    SanitizeString(raw.Audience),
		Difficulty:  SanitizeString(raw.Difficulty),
		Mode:        SanitizeString(raw.Mode),
		Skills:      SanitizeString(raw.Skills),
		Constraints: SanitizeString(raw.Constraints),
		TimeDays:    ClampInt(raw.TimeAvailableDays, MinTimeDays, MaxTimeDays, DefaultTimeDays),
		IdeaCount:   ClampInt(raw.MultiIdeaCount, MinIdeaCount, MaxIdeaCount, DefaultIdeaCount),
	}
}

// GeneratedIdea documents the shape each idea in the model's reply is asked
// to follow. The service does not re-validate individual ideas against this
// shape (the generated document is returned to the caller verbatim); the
// type exists as the schema contract referenced by the prompt builder and
// exercised in tests.
type GeneratedIdea struct {
	Title        string            `json:"title"`
	Tagline      string            `json:"tagline"`
	Problem      string            `json:"problem"`
	Solution     string            `json:"solution"`
	Features     []string          `json:"features"`
	TechStack    []string          `json:"tech_stack"`
	Architecture string            `json:"architecture"`
	Roadmap      []RoadmapPhase    `json:"roadmap"`
	Feasibility  FeasibilityScores `json:"feasibility"`
	Persona      string            `json:"persona"`
	Monetization string            `json:"monetization"`
	TaskBreakdown []TaskGroup      `json:"task_breakdown"`
}

// RoadmapPhase is one ordered phase of the build roadmap.
type RoadmapPhase struct {
	Phase string   `json:"phase"`
	Tasks []string `json:"tasks"`
}

// FeasibilityScores holds the three 1-10 feasibility ratings.
type FeasibilityScores struct {
	Technical int `json:"technical"`
	Market    int `json:"market"`
	Execution int `json:"execution"`
}

// TaskGroup is one area of the task breakdown with its hour estimate.
type TaskGroup struct {
	Area           string   `json:"area"`
	Tasks          []string `json:"tasks"`
	EstimatedHours int      `json:"estimated_hours"`
}
