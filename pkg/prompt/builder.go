package prompt

import (
	"fmt"
	"strings"

	"ideaforge-hq/ideaforge/pkg/ideas"
)

// SystemInstruction is the fixed schema contract sent as the system message
// on every gateway call. It pins the exact field names, types and
// cardinality the model must produce, plus the formatting rules the
// recovery parser depends on (JSON-only output in particular).
const SystemInstruction = `You are an expert product strategist and software architect who designs buildable software project ideas.

Respond with a single JSON object and nothing else: no markdown fences, no commentary, no text before or after the JSON.

The JSON object must have exactly one top-level key, "ideas", whose value is an array of idea objects. Each idea object must contain exactly these fields:

{
  "title": string,
  "tagline": string (one sentence),
  "problem": string (the user problem being solved),
  "solution": string (how the project solves it),
  "features": [string] (5-8 concrete features),
  "tech_stack": [string] (specific technologies, matched to the builder's skills),
  "architecture": string (an ASCII-art diagram of the main components and data flow),
  "roadmap": [{"phase": string, "tasks": [string]}] (ordered build phases),
  "feasibility": {"technical": number 1-10, "market": number 1-10, "execution": number 1-10},
  "persona": string (a short description of the primary user),
  "monetization": string (how the project could make money),
  "task_breakdown": [{"area": string, "tasks": [string], "estimated_hours": number}]
}

Rules:
- "architecture" must be a plain-text ASCII diagram using characters like +, -, |, > and box drawing. No image references.
- "roadmap" phases must be in build order and fit within the stated time budget.
- The sum of "estimated_hours" across "task_breakdown" must equal time_days * 8 (an 8-hour working day).
- Every idea must be independently buildable by the described team within the stated time.`

// BuildUserInstruction renders the sanitized request into the user message.
// Optional fields are omitted from the brief when empty rather than
// interpolated as blanks.
func BuildUserInstruction(req *ideas.IdeaRequest) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Generate %d distinct software project idea(s) with the following brief:\n\n", req.IdeaCount)
	fmt.Fprintf(&b, "- Domain: %s\n", req.Domain)
	fmt.Fprintf(&b, "- Target audience: %s\n", req.Audience)
	fmt.Fprintf(&b, "- Difficulty level: %s\n", req.Difficulty)
	fmt.Fprintf(&b, "- Project mode: %s\n", req.Mode)

	if req.Skills != "" {
		fmt.Fprintf(&b, "- Builder's existing skills: %s\n", req.Skills)
	}
	if req.Constraints != "" {
		fmt.Fprintf(&b, "- Constraints: %s\n", req.Constraints)
	}

	fmt.Fprintf(&b, "- Time available: %d day(s) (time_days = %d)\n", req.TimeDays, req.TimeDays)
	fmt.Fprintf(&b, "\nReturn exactly %d idea(s) in the \"ideas\" array, scoped so each fits the %d-day budget.", req.IdeaCount, req.TimeDays)

	return b.String()
}

// Build returns the (system, user) instruction pair for a sanitized request.
func Build(req *ideas.IdeaRequest) (system, user string) {
	return SystemInstruction, BuildUserInstruction(req)
}
