package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeIni(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oaisys.ini")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.ini"))
	if err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}
	if cfg.ServerConf.Address != "localhost:50051" {
		t.Errorf("Expected default address, got '%s'", cfg.ServerConf.Address)
	}
	if cfg.DriverConf.WarmUp != 5*time.Second || cfg.DriverConf.PollInterval != time.Second {
		t.Errorf("Unexpected default timings: %+v", cfg.DriverConf)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeIni(t, `
[server]
address = 10.0.0.5:6000

[driver]
poll_interval = 250ms
max_poll_attempts = 40
pose_z = 12.5

[log]
level = debug
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}
	if cfg.ServerConf.Address != "10.0.0.5:6000" {
		t.Errorf("Expected address from file, got '%s'", cfg.ServerConf.Address)
	}
	if cfg.DriverConf.PollInterval != 250*time.Millisecond || cfg.DriverConf.MaxPollAttempts != 40 {
		t.Errorf("Unexpected driver settings: %+v", cfg.DriverConf)
	}
	if cfg.DriverConf.PoseZ != 12.5 || cfg.DriverConf.PoseX != 1.0 || cfg.DriverConf.PoseQW != 1.0 {
		t.Errorf("Expected pose_z from file and the rest from defaults, got %+v", cfg.DriverConf)
	}
	if cfg.DriverConf.WarmUp != 5*time.Second {
		t.Errorf("Expected keys absent from the file to keep their defaults, got %s", cfg.DriverConf.WarmUp)
	}
	if cfg.LogConf.Level != "debug" {
		t.Errorf("Expected level 'debug', got '%s'", cfg.LogConf.Level)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("OAISYS_ADDRESS", "127.0.0.1:50052")
	path := writeIni(t, "[server]\naddress = 10.0.0.5:6000\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned an error: %v", err)
	}
	if cfg.ServerConf.Address != "127.0.0.1:50052" {
		t.Errorf("Expected the environment to win, got '%s'", cfg.ServerConf.Address)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"zero poll interval": "[driver]\npoll_interval = 0s\n",
		"negative batches":   "[driver]\nbatches = -1\n",
		"negative attempts":  "[driver]\nmax_poll_attempts = -3\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeIni(t, content)); err == nil {
				t.Errorf("Expected Load() to reject %q", content)
			}
		})
	}
}
