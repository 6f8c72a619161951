// Package version reports the build the todo api was compiled from
package version

import (
	"encoding/json"
	"net/http"
)

// BuildInfo identifies a build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set with -ldflags "-X 'todoapi/internal/core/version.version=v0.1.0'
// -X 'todoapi/internal/core/version.commit=abcd' -X 'todoapi/internal/core/version.date=2026-10-01'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information
func Info() BuildInfo {
	return BuildInfo{Service: "todoapi", Version: version, Commit: commit, Date: date}
}

// Handler serves Info as JSON
func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Info())
	}
}
