package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Transfer.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want 3", config.Transfer.MaxRetries)
	}
	if config.Transfer.DelaySeconds != 2 {
		t.Errorf("DelaySeconds = %d, want 2", config.Transfer.DelaySeconds)
	}
	if config.Transfer.ProgressPath == "" {
		t.Error("ProgressPath should have a default")
	}
	if config.Database.Path == "" {
		t.Error("Database.Path should have a default")
	}
	if config.Credentials.YouTube.ProxyURL == "" {
		t.Error("ProxyURL should have a default")
	}
}

func TestTransferConfigDelay(t *testing.T) {
	conf := TransferConfig{DelaySeconds: 2}
	if got := conf.Delay(); got != 2*time.Second {
		t.Errorf("Delay() = %v, want 2s", got)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("parses a full file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[credentials.spotify]
client_id = "cid"
client_secret = "secret"

[credentials.youtube]
proxy_url = "http://localhost:9999"
auth_file = "browser.json"

[transfer]
progress_path = "custom_progress.json"
max_retries = 5
delay_seconds = 1

[database]
path = "custom.db"
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}

		if config.Credentials.Spotify.ClientID != "cid" {
			t.Errorf("ClientID = %q", config.Credentials.Spotify.ClientID)
		}
		if config.Credentials.YouTube.ProxyURL != "http://localhost:9999" {
			t.Errorf("ProxyURL = %q", config.Credentials.YouTube.ProxyURL)
		}
		if config.Transfer.MaxRetries != 5 {
			t.Errorf("MaxRetries = %d, want 5", config.Transfer.MaxRetries)
		}
		if config.Transfer.ProgressPath != "custom_progress.json" {
			t.Errorf("ProgressPath = %q", config.Transfer.ProgressPath)
		}
		if config.Database.Path != "custom.db" {
			t.Errorf("Database.Path = %q", config.Database.Path)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
			t.Error("LoadConfig() should fail for a missing file")
		}
	})

	t.Run("malformed file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[broken"), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(path); err == nil {
			t.Error("LoadConfig() should fail on malformed TOML")
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := CreateConfigFile(path); err != nil {
		t.Fatalf("CreateConfigFile() error = %v", err)
	}

	config, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("created config does not parse: %v", err)
	}
	if config.Transfer.MaxRetries != 3 {
		t.Errorf("MaxRetries = %d, want template default 3", config.Transfer.MaxRetries)
	}

	if err := CreateConfigFile(path); err == nil {
		t.Error("CreateConfigFile() should refuse to overwrite")
	}
}
