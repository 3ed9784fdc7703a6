package internal

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/starford/ansuz/internal/apperr"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// dateLayout is the accepted format of the optional creation-date floor.
const dateLayout = "2006-01-02"

// Config represents the application configuration. Defaults come from
// the environment (see NewDefaultConfig); an optional YAML file
// overrides them.
type Config struct {
	App    ApplicationConfig `yaml:"app"`
	Vault  VaultConfig       `yaml:"vault"`
	Source SourceConfig      `yaml:"source"`
	OpenAI OpenAIConfig      `yaml:"openai"`
	Ledger LedgerConfig      `yaml:"ledger"`
	Auth   AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration. Failures are configuration
// errors: callers match them with errors.Is(err, apperr.ErrConfiguration)
// to print the required-settings hint.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return apperr.Tag(apperr.ErrConfiguration, err)
	}
	if err := c.Vault.Validate(); err != nil {
		return apperr.Tag(apperr.ErrConfiguration, err)
	}
	if err := c.Source.Validate(); err != nil {
		return apperr.Tag(apperr.ErrConfiguration, err)
	}
	if err := c.OpenAI.Validate(); err != nil {
		return apperr.Tag(apperr.ErrConfiguration, err)
	}
	if err := c.Ledger.Validate(); err != nil {
		return apperr.Tag(apperr.ErrConfiguration, err)
	}
	return apperr.Tag(apperr.ErrConfiguration, c.Auth.Validate())
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration for serve mode.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// VaultConfig holds the vault root and the subfolders the pipeline
// writes into.
type VaultConfig struct {
	Path              string `yaml:"path"`
	AttachmentsFolder string `yaml:"attachments_folder"`
	DiaryFolder       string `yaml:"diary_folder"`
	NotesFolder       string `yaml:"notes_folder"`
}

// Validate validates the vault configuration.
func (c *VaultConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.AttachmentsFolder, validation.Required),
		validation.Field(&c.DiaryFolder, validation.Required),
		validation.Field(&c.NotesFolder, validation.Required),
	)
}

// SourceConfig holds the voice memo source directory and selection
// options.
type SourceConfig struct {
	Path      string `yaml:"path"`
	Extension string `yaml:"extension"`
	// AfterDate, when set, excludes memos created strictly before this
	// date (YYYY-MM-DD).
	AfterDate string `yaml:"after_date"`
}

// Validate validates the source configuration.
func (c *SourceConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
		validation.Field(&c.Extension, validation.Required),
	); err != nil {
		return err
	}
	if c.AfterDate != "" {
		if _, err := time.ParseInLocation(dateLayout, c.AfterDate, time.Local); err != nil {
			return fmt.Errorf("source: after_date %q must be in YYYY-MM-DD format", c.AfterDate)
		}
	}
	return nil
}

// Floor returns the configured creation-date floor, or the zero time
// when none is set. Validate must have accepted the config first.
func (c *SourceConfig) Floor() time.Time {
	if c.AfterDate == "" {
		return time.Time{}
	}
	t, err := time.ParseInLocation(dateLayout, c.AfterDate, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// OpenAIConfig holds the external AI service settings.
type OpenAIConfig struct {
	APIKey          string `yaml:"api_key"`
	BaseURL         string `yaml:"base_url"`
	TranscribeModel string `yaml:"transcribe_model"`
	SummaryModel    string `yaml:"summary_model"`
}

// Validate validates the OpenAI configuration.
func (c *OpenAIConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.TranscribeModel, validation.Required),
		validation.Field(&c.SummaryModel, validation.Required),
	)
}

// LedgerConfig holds the run-history database location.
type LedgerConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the ledger configuration.
func (c *LedgerConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AuthConfig holds serve-mode API authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local use.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled".
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// RequiredSettings lists the environment variables a fresh setup needs;
// used in configuration-error remediation hints.
var RequiredSettings = []string{
	"OPENAI_API_KEY",
	"OBSIDIAN_VAULT_PATH",
	"VOICE_MEMOS_PATH",
	"OBSIDIAN_ATTACHMENTS_FOLDER (optional, default: attachments)",
	"OBSIDIAN_DIARY_FOLDER (optional, default: diary)",
	"OBSIDIAN_NOTES_FOLDER (optional, default: notes/memos)",
	"PROCESS_FILES_AFTER_DATE (optional, format: YYYY-MM-DD)",
}

// NewDefaultConfig returns a Config populated from the environment
// variables the tool has always honored, with sensible fallbacks.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Vault: VaultConfig{
			Path:              os.Getenv("OBSIDIAN_VAULT_PATH"),
			AttachmentsFolder: envOr("OBSIDIAN_ATTACHMENTS_FOLDER", "attachments"),
			DiaryFolder:       envOr("OBSIDIAN_DIARY_FOLDER", "diary"),
			NotesFolder:       envOr("OBSIDIAN_NOTES_FOLDER", "notes/memos"),
		},
		Source: SourceConfig{
			Path:      os.Getenv("VOICE_MEMOS_PATH"),
			Extension: envOr("VOICE_MEMOS_EXTENSION", ".m4a"),
			AfterDate: os.Getenv("PROCESS_FILES_AFTER_DATE"),
		},
		OpenAI: OpenAIConfig{
			APIKey:          os.Getenv("OPENAI_API_KEY"),
			BaseURL:         os.Getenv("OPENAI_BASE_URL"),
			TranscribeModel: envOr("OPENAI_TRANSCRIBE_MODEL", "whisper-1"),
			SummaryModel:    envOr("OPENAI_SUMMARY_MODEL", "gpt-4o-mini"),
		},
		Ledger: LedgerConfig{
			Path: envOr("ANSUZ_LEDGER_PATH", "./ansuz.db"),
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
