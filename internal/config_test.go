package internal

import (
	"errors"
	"testing"
	"time"

	"github.com/starford/ansuz/internal/apperr"
	pkgconfig "github.com/starford/ansuz/pkg/config"
)

func validConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			HTTP: HTTPConfig{Port: 8080},
		},
		Vault: VaultConfig{
			Path:              "/vault",
			AttachmentsFolder: "attachments",
			DiaryFolder:       "diary",
			NotesFolder:       "notes/memos",
		},
		Source: SourceConfig{
			Path:      "/memos",
			Extension: ".m4a",
		},
		OpenAI: OpenAIConfig{
			APIKey:          "sk-test",
			TranscribeModel: "whisper-1",
			SummaryModel:    "gpt-4o-mini",
		},
		Ledger: LedgerConfig{Path: "./ansuz.db"},
		Auth:   AuthConfig{Mode: AuthModeDisabled},
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid config rejected: %v", err)
	}
}

func TestConfigValidateMissingVaultPath(t *testing.T) {
	cfg := validConfig()
	cfg.Vault.Path = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty vault path")
	}
}

func TestConfigValidateMissingAPIKey(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAI.APIKey = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for empty api key")
	}
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestConfigValidateBadAfterDate(t *testing.T) {
	cfg := validConfig()
	cfg.Source.AfterDate = "01-02-2024"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed after_date")
	}
}

func TestConfigValidateBadPort(t *testing.T) {
	cfg := validConfig()
	cfg.App.HTTP.Port = 0
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for port 0")
	}
}

func TestAuthTokenModeRequiresToken(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Mode = AuthModeToken
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for token mode without token")
	}

	cfg.Auth.Token = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token rejected: %v", err)
	}
	if !cfg.Auth.AuthEnabled() {
		t.Fatal("expected auth to be enabled")
	}
}

func TestLoadOptionalKeepsConfigurationTag(t *testing.T) {
	cfg := validConfig()
	cfg.OpenAI.APIKey = ""

	err := pkgconfig.LoadOptional("no-such-config.yaml", cfg)
	if err == nil {
		t.Fatal("expected validation error for empty api key")
	}
	if !errors.Is(err, apperr.ErrConfiguration) {
		t.Fatalf("err = %v, want configuration error", err)
	}
}

func TestSourceFloor(t *testing.T) {
	src := SourceConfig{Path: "/memos", Extension: ".m4a"}
	if !src.Floor().IsZero() {
		t.Fatal("expected zero floor when after_date is unset")
	}

	src.AfterDate = "2024-02-01"
	want := time.Date(2024, 2, 1, 0, 0, 0, 0, time.Local)
	if got := src.Floor(); !got.Equal(want) {
		t.Fatalf("floor = %v, want %v", got, want)
	}
}

func TestNewDefaultConfigEnv(t *testing.T) {
	t.Setenv("OBSIDIAN_VAULT_PATH", "/my/vault")
	t.Setenv("VOICE_MEMOS_PATH", "/my/memos")
	t.Setenv("OPENAI_API_KEY", "sk-env")
	t.Setenv("OBSIDIAN_DIARY_FOLDER", "journal")
	t.Setenv("PROCESS_FILES_AFTER_DATE", "2024-01-15")

	cfg := NewDefaultConfig()
	if cfg.Vault.Path != "/my/vault" {
		t.Fatalf("vault path = %q", cfg.Vault.Path)
	}
	if cfg.Vault.DiaryFolder != "journal" {
		t.Fatalf("diary folder = %q", cfg.Vault.DiaryFolder)
	}
	if cfg.Vault.AttachmentsFolder != "attachments" {
		t.Fatalf("attachments folder = %q", cfg.Vault.AttachmentsFolder)
	}
	if cfg.Source.AfterDate != "2024-01-15" {
		t.Fatalf("after date = %q", cfg.Source.AfterDate)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("env-seeded config rejected: %v", err)
	}
}
