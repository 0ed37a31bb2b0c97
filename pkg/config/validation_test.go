package config

import (
	"strings"
	"testing"
)

func TestValidate_ValidConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid config to pass validation, got error: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "INVALID"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for invalid log level")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_InvalidLogFormat(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Format = "xml"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for invalid log format")
	}
}

func TestValidate_InvalidAPIPort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Port = 70000

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for port out of range")
	}
	if !strings.Contains(err.Error(), "max") {
		t.Errorf("Expected 'max' validation error, got: %v", err)
	}
}

func TestValidate_NegativePort(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Port = -1

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for negative port")
	}
}

func TestValidate_MissingTreeRoot(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Tree.Root = ""

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for missing tree root")
	}
	errStr := strings.ToLower(err.Error())
	if !strings.Contains(errStr, "tree") || !strings.Contains(errStr, "root") {
		t.Errorf("Expected error about tree root, got: %v", err)
	}
}

func TestValidate_RelativeTreeRoot(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Tree.Root = "relative/dir"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for relative tree root")
	}
}

func TestValidate_ChunkSizeBounds(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Tree.ChunkSize = 16

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for tiny chunk size")
	}

	cfg.Tree.ChunkSize = 64 << 20
	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for huge chunk size")
	}
}

func TestValidate_UnknownExecutor(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Command.Executor = "shell"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Expected validation error for unknown executor")
	}
	if !strings.Contains(err.Error(), "oneof") {
		t.Errorf("Expected 'oneof' validation error, got: %v", err)
	}
}

func TestValidate_ProcessWithoutProgram(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Command.Executor = "process"

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for process executor without program")
	}

	cfg.Command.Program = "/bin/echo"
	if err := Validate(cfg); err != nil {
		t.Errorf("Expected valid process config, got: %v", err)
	}
}

func TestValidate_TelemetryEnabledWithoutEndpoint(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.Enabled = true
	cfg.Telemetry.Endpoint = ""

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for telemetry without endpoint")
	}
}

func TestValidate_TelemetrySampleRate(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.SampleRate = 1.5

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for sample rate > 1")
	}
}

func TestValidate_UnknownProfileType(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Telemetry.Profiling.Enabled = true
	cfg.Telemetry.Profiling.ProfileTypes = []string{"cpu", "gpu"}

	if err := Validate(cfg); err == nil {
		t.Fatal("Expected validation error for unknown profile type")
	}
}

func TestValidate_LogLevelNormalization(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Logging.Level = "debug"

	if err := Validate(cfg); err != nil {
		t.Fatalf("Expected lowercase level to validate, got: %v", err)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level normalized to 'DEBUG', got %q", cfg.Logging.Level)
	}
}
