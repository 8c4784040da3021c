package mbd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "mbd.toml")
	data := []byte("" +
		"[server]\n" +
		"broker = \"mqtt://localhost\"\n" +
		"identity = \"mbd-test\"\n" +
		"\n" +
		"[modules.music_tool]\n" +
		"enabled = true\n" +
		"node_id = \"mb:tool:music:test\"\n" +
		"api_token = \"secret\"\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Server.Broker != "mqtt://localhost" {
		t.Fatalf("expected broker")
	}
	if !cfg.Modules.MusicTool.Enabled {
		t.Fatalf("expected music tool enabled")
	}
	if cfg.Modules.MusicTool.APIToken != "secret" {
		t.Fatalf("expected api token")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("MUSIC_API_BASE_URL", "http://override.test/api")
	t.Setenv("MUSIC_API_TOKEN", "env-token")
	t.Setenv("MUSIC_SIGN_PARAM", "sign")

	cfg := Config{}
	cfg.Modules.MusicTool.APIToken = "file-token"
	ApplyEnvOverrides(&cfg)

	if cfg.Modules.MusicTool.APIBaseURL != "http://override.test/api" {
		t.Fatalf("expected base url override")
	}
	if cfg.Modules.MusicTool.APIToken != "env-token" {
		t.Fatalf("environment token must win over file token")
	}
	if cfg.Modules.MusicTool.SignParam != "sign" {
		t.Fatalf("expected sign param override")
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path, err := DefaultConfigPath()
	if err != nil {
		t.Fatalf("default config path: %v", err)
	}
	if path == "" {
		t.Fatalf("expected path")
	}
}
