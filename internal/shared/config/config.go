package config

import (
	"fmt"
	"os"

	"gopkg.in/ini.v1"
	"oaisys_client/internal/shared/types"
)

// Load reads oaisys.ini over the built-in defaults. A missing file is not an
// error: the defaults alone describe the fixed demo sequence.
func Load(fileName string) (*types.Config, error) {
	cfg := types.DefaultConfig()
	if err := LoadIni(cfg, fileName); err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	overrideFromEnvString(&cfg.ServerConf.Address, "OAISYS_ADDRESS")
	overrideFromEnvString(&cfg.LogConf.Level, "OAISYS_LOG_LEVEL")
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadIni maps the keys present in fileName onto cfg, leaving the others untouched.
func LoadIni(cfg *types.Config, fileName string) error {
	if _, err := os.Stat(fileName); err != nil {
		return err
	}
	iniFile, err := ini.Load(fileName)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", fileName, err)
	}
	if err := iniFile.MapTo(cfg); err != nil {
		return fmt.Errorf("failed to map %s: %w", fileName, err)
	}
	return nil
}

func Validate(cfg *types.Config) error {
	switch {
	case cfg.ServerConf.Address == "":
		return fmt.Errorf("server address must not be empty")
	case cfg.DriverConf.PollInterval <= 0:
		return fmt.Errorf("poll_interval must be positive, got %s", cfg.DriverConf.PollInterval)
	case cfg.DriverConf.WarmUp < 0:
		return fmt.Errorf("warm_up must not be negative, got %s", cfg.DriverConf.WarmUp)
	case cfg.DriverConf.Batches < 0 || cfg.DriverConf.SamplesPerBatch < 0:
		return fmt.Errorf("batches and samples_per_batch must not be negative")
	case cfg.DriverConf.MaxPollAttempts < 0 || cfg.DriverConf.PollTimeout < 0:
		return fmt.Errorf("max_poll_attempts and poll_timeout must not be negative")
	}
	return nil
}

func overrideFromEnvString(target *string, envName string) {
	if envValue := os.Getenv(envName); envValue != "" {
		*target = envValue
	}
}
