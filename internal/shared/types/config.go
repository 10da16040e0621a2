package types

import "time"

// ServerConf describes how to reach the Oaisys simulation server.
type ServerConf struct {
	Address          string        `ini:"address"`
	UserAgent        string        `ini:"user_agent"`
	KeepaliveTime    time.Duration `ini:"keepalive_time"`
	KeepaliveTimeout time.Duration `ini:"keepalive_timeout"`
}

// DriverConf parameterises the demo sequence. The defaults reproduce the
// fixed script: one batch, two samples at (1, 2, 30), unbounded polling.
type DriverConf struct {
	Batches         int           `ini:"batches"`
	SamplesPerBatch int           `ini:"samples_per_batch"`
	WarmUp          time.Duration `ini:"warm_up"`
	PollInterval    time.Duration `ini:"poll_interval"`
	MaxPollAttempts int           `ini:"max_poll_attempts"` // 0 means unbounded
	PollTimeout     time.Duration `ini:"poll_timeout"`      // 0 means none
	ExitWhenDone    bool          `ini:"exit_when_done"`

	PoseX  float64 `ini:"pose_x"`
	PoseY  float64 `ini:"pose_y"`
	PoseZ  float64 `ini:"pose_z"`
	PoseQW float64 `ini:"pose_qw"`
	PoseQX float64 `ini:"pose_qx"`
	PoseQY float64 `ini:"pose_qy"`
	PoseQZ float64 `ini:"pose_qz"`
}

// LogConf contains logging specific configuration
type LogConf struct {
	Level string `ini:"level"`
}

// Config is the client's unified configuration, loaded from oaisys.ini.
type Config struct {
	ServerConf `ini:"server"`
	DriverConf `ini:"driver"`
	LogConf    `ini:"log"`
}

// DefaultConfig returns the built-in configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		ServerConf: ServerConf{
			Address: "localhost:50051",
		},
		DriverConf: DriverConf{
			Batches:         1,
			SamplesPerBatch: 2,
			WarmUp:          5 * time.Second,
			PollInterval:    time.Second,
			PoseX:           1.0,
			PoseY:           2.0,
			PoseZ:           30.0,
			PoseQW:          1.0,
		},
		LogConf: LogConf{
			Level: "info",
		},
	}
}
