package config

// Config holds all application configuration values.
// Defaults are set in DefaultConfig() and can be overridden via dotfile.
// NOTE: Values in config files override defaults, including explicit zero values.
// Missing keys are left at their default values.
type Config struct {
	Toolbar   ToolbarConfig   `json:"toolbar"`
	UI        UIConfig        `json:"ui"`
	Workspace WorkspaceConfig `json:"workspace"`
	Log       LogConfig       `json:"log"`
}

type ToolbarConfig struct {
	// Profile button
	LabelMaxRunes  int    `json:"label_max_runes"` // Default: 7
	Indicator      string `json:"indicator"`       // Default: "▾"
	EmptyLabel     string `json:"empty_label"`     // Default: "()"
	Placeholder    string `json:"placeholder"`     // Default: "(no conf)"
	CustomizeLabel string `json:"customize_label"` // Default: "Customize…"
	TooltipHint    string `json:"tooltip_hint"`    // Default: "Run profile"

	// Error cue shown when a configuration switch fails
	FeedbackDurationMs int `json:"feedback_duration_ms"` // Default: 800
}

type UIConfig struct {
	TickIntervalMs int    `json:"tick_interval_ms"` // Default: 300
	ColorPrimary   string `json:"color_primary"`    // Default: "63"
	ColorError     string `json:"color_error"`      // Default: "196"
	ColorMuted     string `json:"color_muted"`      // Default: "241"
	ColorSuccess   string `json:"color_success"`    // Default: "42"
	OutputHeight   int    `json:"output_height"`    // Default: 10
}

type WorkspaceConfig struct {
	ManifestName      string `json:"manifest_name"`       // Default: "runbar.yaml"
	WatchManifest     bool   `json:"watch_manifest"`      // Default: true
	CommandTimeoutSec int    `json:"command_timeout_sec"` // Default: 600 (10 minutes)
	GracefulStopMs    int    `json:"graceful_stop_ms"`    // Default: 2000
	MaxOutputBytes    int64  `json:"max_output_bytes"`    // Default: 1024 * 1024 (1MB)
	MaxListedFiles    int    `json:"max_listed_files"`    // Default: 2000
}

type LogConfig struct {
	Level string `json:"level"` // Default: "info"
	File  string `json:"file"`  // Default: "" (~/.cache/runbar/runbar.log)
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Toolbar: ToolbarConfig{
			LabelMaxRunes:      7,
			Indicator:          "▾",
			EmptyLabel:         "()",
			Placeholder:        "(no conf)",
			CustomizeLabel:     "Customize…",
			TooltipHint:        "Run profile",
			FeedbackDurationMs: 800,
		},
		UI: UIConfig{
			TickIntervalMs: 300,
			ColorPrimary:   "63",
			ColorError:     "196",
			ColorMuted:     "241",
			ColorSuccess:   "42",
			OutputHeight:   10,
		},
		Workspace: WorkspaceConfig{
			ManifestName:      "runbar.yaml",
			WatchManifest:     true,
			CommandTimeoutSec: 600,
			GracefulStopMs:    2000,
			MaxOutputBytes:    1024 * 1024,
			MaxListedFiles:    2000,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
