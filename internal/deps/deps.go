// Package deps reports the availability of the external binaries scribe
// shells out to, for display by `scribe config show`.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"scribe/internal/config"
)

// Requirement defines an external dependency scribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// Requirements builds the dependency list from the effective configuration.
func Requirements(cfg *config.Config) []Requirement {
	return []Requirement{
		{
			Name:        "Whisper launcher",
			Command:     cfg.Whisper.Binary,
			Description: fmt.Sprintf("Runs %s for transcription", cfg.Whisper.Tool),
		},
		{
			Name:        "FFmpeg",
			Command:     cfg.FFmpeg.Binary,
			Description: "Audio conversion and extraction",
		},
		{
			Name:        "FFprobe",
			Command:     cfg.FFmpeg.ProbeBinary,
			Description: "Stream inspection for channel splitting",
			Optional:    true,
		},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}
