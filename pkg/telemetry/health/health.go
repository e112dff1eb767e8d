// Package health implements the liveness, readiness, and version probe
// endpoints.
package health

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"time"
)

// Check is a named readiness check. It returns nil when the component is
// ready to serve traffic.
type Check func() error

// Checker aggregates readiness checks and serves the probe endpoints.
type Checker struct {
	mu     sync.RWMutex
	checks map[string]Check
}

// NewChecker creates an empty checker. With no registered checks the
// service reports ready as soon as it is listening.
func NewChecker() *Checker {
	return &Checker{checks: make(map[string]Check)}
}

// Register adds a named readiness check, replacing any existing check
// with the same name.
func (c *Checker) Register(name string, check Check) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.checks[name] = check
}

// checkResult is the per-check entry in the readiness response.
type checkResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// LivenessHandler reports that the process is alive. It never consults
// the registered checks.
func (c *Checker) LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{
			"status":    "ok",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// ReadinessHandler runs every registered check and reports 200 when all
// pass, 503 otherwise.
func (c *Checker) ReadinessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c.mu.RLock()
		names := make([]string, 0, len(c.checks))
		checks := make(map[string]Check, len(c.checks))
		for name, check := range c.checks {
			names = append(names, name)
			checks[name] = check
		}
		c.mu.RUnlock()

		results := make(map[string]checkResult, len(names))
		ready := true
		for _, name := range names {
			if err := checks[name](); err != nil {
				ready = false
				results[name] = checkResult{Status: "unhealthy", Message: err.Error()}
			} else {
				results[name] = checkResult{Status: "ok"}
			}
		}

		status := "ready"
		code := http.StatusOK
		if !ready {
			status = "unhealthy"
			code = http.StatusServiceUnavailable
		}

		writeJSON(w, code, map[string]interface{}{
			"status":    status,
			"checks":    results,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	}
}

// VersionInfo contains build and version information.
type VersionInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// VersionHandler serves static build information.
func VersionHandler(version, commit, buildTime string) http.HandlerFunc {
	info := VersionInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}

	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, info)
	}
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(body)
}
