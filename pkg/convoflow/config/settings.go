package config

import (
	"os"
	"time"

	"github.com/randalmurphal/convoflow/pkg/convoflow"
)

// Environment variables honored by ApplyEnv. Each overrides the
// corresponding Settings field when set and non-empty.
const (
	EnvAPIBaseURL = "CONVOFLOW_API_URL"
	EnvAPITimeout = "CONVOFLOW_API_TIMEOUT"
	EnvDBPath     = "CONVOFLOW_DB_PATH"
	EnvVoice      = "CONVOFLOW_VOICE"
	EnvLanguage   = "CONVOFLOW_LANGUAGE"
)

// Settings is the typed configuration for a flow editing deployment.
type Settings struct {
	// APIBaseURL is the base URL of the flow persistence API. Empty
	// means remote persistence is disabled.
	APIBaseURL string

	// APITimeout bounds each persistence request.
	APITimeout time.Duration

	// DBPath is the SQLite database path for local persistence.
	DBPath string

	// DefaultVoice and DefaultLanguage seed the metadata of newly
	// bootstrapped flows.
	DefaultVoice    string
	DefaultLanguage string

	// DefaultFlowName is the display name given to newly bootstrapped
	// flows.
	DefaultFlowName string
}

// Defaults returns the settings used when no configuration is supplied.
func Defaults() Settings {
	meta := convoflow.DefaultMetadata()
	return Settings{
		APITimeout:      15 * time.Second,
		DBPath:          "convoflow.db",
		DefaultVoice:    meta.Voice,
		DefaultLanguage: meta.Language,
		DefaultFlowName: convoflow.DefaultFlowName,
	}
}

// SettingsFrom extracts typed settings from a Config, falling back to
// Defaults for missing or malformed keys.
//
// Recognized keys:
//
//	api_url       string
//	api_timeout   duration ("15s") or seconds
//	db_path       string
//	voice         string
//	language      string
//	flow_name     string
func SettingsFrom(cfg Config) Settings {
	def := Defaults()
	return Settings{
		APIBaseURL:      cfg.String("api_url", def.APIBaseURL),
		APITimeout:      cfg.Duration("api_timeout", def.APITimeout),
		DBPath:          cfg.String("db_path", def.DBPath),
		DefaultVoice:    cfg.String("voice", def.DefaultVoice),
		DefaultLanguage: cfg.String("language", def.DefaultLanguage),
		DefaultFlowName: cfg.String("flow_name", def.DefaultFlowName),
	}
}

// ApplyEnv overlays environment variable overrides onto s and returns
// the result. Unset and empty variables leave the field unchanged; a
// malformed CONVOFLOW_API_TIMEOUT is ignored.
func ApplyEnv(s Settings) Settings {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		s.APIBaseURL = v
	}
	if v := os.Getenv(EnvAPITimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			s.APITimeout = d
		}
	}
	if v := os.Getenv(EnvDBPath); v != "" {
		s.DBPath = v
	}
	if v := os.Getenv(EnvVoice); v != "" {
		s.DefaultVoice = v
	}
	if v := os.Getenv(EnvLanguage); v != "" {
		s.DefaultLanguage = v
	}
	return s
}

// Metadata returns the flow metadata seeded from the settings.
func (s Settings) Metadata() convoflow.Metadata {
	return convoflow.Metadata{
		Voice:    s.DefaultVoice,
		Language: s.DefaultLanguage,
	}
}
