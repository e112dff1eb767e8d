// Ideaforge is an AI project-idea generation service.
//
// It exposes a single POST endpoint that validates and sanitizes
// project-idea parameters, enforces a per-caller rate limit, delegates
// idea synthesis to an upstream chat-completion gateway, and recovers a
// guaranteed-JSON document from the model's free-form reply.
//
// Usage:
//
//	# Start the server with default configuration
//	ideaforge run
//
//	# Start with a configuration file
//	ideaforge run --config /etc/ideaforge/config.yaml
//
//	# Validate configuration without starting the server
//	ideaforge run --dry-run
//
//	# Show version information
//	ideaforge version
package main

func main() {
	Execute()
}
