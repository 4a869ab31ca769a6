package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks config values for correctness.
// Returns an error listing every invalid value.
func (c *Config) Validate() error {
	var errs []string

	// Toolbar validation
	if c.Toolbar.LabelMaxRunes < 1 {
		errs = append(errs, "toolbar.label_max_runes must be >= 1")
	}
	if c.Toolbar.Placeholder == "" {
		errs = append(errs, "toolbar.placeholder must not be empty")
	}
	if c.Toolbar.CustomizeLabel == "" {
		errs = append(errs, "toolbar.customize_label must not be empty")
	}
	if c.Toolbar.FeedbackDurationMs < 0 {
		errs = append(errs, "toolbar.feedback_duration_ms must be >= 0")
	}

	// UI validation
	if c.UI.TickIntervalMs < 1 {
		errs = append(errs, "ui.tick_interval_ms must be >= 1")
	}
	if c.UI.OutputHeight < 1 {
		errs = append(errs, "ui.output_height must be >= 1")
	}
	for name, color := range map[string]string{
		"color_primary": c.UI.ColorPrimary,
		"color_error":   c.UI.ColorError,
		"color_muted":   c.UI.ColorMuted,
		"color_success": c.UI.ColorSuccess,
	} {
		if !validColor(color) {
			errs = append(errs, fmt.Sprintf("ui.%s must be an ANSI color index (0-255) or hex", name))
		}
	}

	// Workspace validation
	if c.Workspace.ManifestName == "" {
		errs = append(errs, "workspace.manifest_name must not be empty")
	}
	if c.Workspace.CommandTimeoutSec < 1 {
		errs = append(errs, "workspace.command_timeout_sec must be >= 1")
	}
	if c.Workspace.GracefulStopMs < 1 {
		errs = append(errs, "workspace.graceful_stop_ms must be >= 1")
	}
	if c.Workspace.MaxOutputBytes < 1 {
		errs = append(errs, "workspace.max_output_bytes must be >= 1")
	}
	if c.Workspace.MaxListedFiles < 1 {
		errs = append(errs, "workspace.max_listed_files must be >= 1")
	}

	// Log validation
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, "log.level must be one of debug, info, warn, error")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %v", errs)
	}

	return nil
}

// validColor accepts what lipgloss.Color understands. Empty means terminal default.
func validColor(s string) bool {
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, "#") {
		if len(s) != 4 && len(s) != 7 {
			return false
		}
		_, err := strconv.ParseUint(s[1:], 16, 32)
		return err == nil
	}
	n, err := strconv.Atoi(s)
	return err == nil && n >= 0 && n <= 255
}
