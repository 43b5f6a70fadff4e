package main

import (
	"testing"

	"github.com/umfat/helpdesk/pkg/config"
)

func TestResolveLoggerSettings(t *testing.T) {
	fileCfg := config.LoggerConfig{Level: "warn", File: "cfg.log", Format: "verbose"}

	t.Run("cli flags win over everything", func(t *testing.T) {
		t.Setenv(LogLevelEnvVar, "debug")
		t.Setenv(LogFileEnvVar, "env.log")
		t.Setenv(LogFormatEnvVar, "simple")

		level, file, format := resolveLoggerSettings("error", "cli.log", "simple", fileCfg)
		if level != "error" || file != "cli.log" || format != "simple" {
			t.Errorf("got %q/%q/%q", level, file, format)
		}
	})

	t.Run("env vars beat the config file", func(t *testing.T) {
		t.Setenv(LogLevelEnvVar, "debug")
		t.Setenv(LogFileEnvVar, "env.log")
		t.Setenv(LogFormatEnvVar, "simple")

		level, file, format := resolveLoggerSettings("", "", "", fileCfg)
		if level != "debug" || file != "env.log" || format != "simple" {
			t.Errorf("got %q/%q/%q", level, file, format)
		}
	})

	t.Run("config file beats defaults", func(t *testing.T) {
		t.Setenv(LogLevelEnvVar, "")
		t.Setenv(LogFileEnvVar, "")
		t.Setenv(LogFormatEnvVar, "")

		level, file, format := resolveLoggerSettings("", "", "", fileCfg)
		if level != "warn" || file != "cfg.log" || format != "verbose" {
			t.Errorf("got %q/%q/%q", level, file, format)
		}
	})

	t.Run("defaults when nothing is set", func(t *testing.T) {
		t.Setenv(LogLevelEnvVar, "")
		t.Setenv(LogFileEnvVar, "")
		t.Setenv(LogFormatEnvVar, "")

		level, file, format := resolveLoggerSettings("", "", "", config.LoggerConfig{})
		if level != DefaultLogLevel || file != "" || format != DefaultLogFormat {
			t.Errorf("got %q/%q/%q", level, file, format)
		}
	})

	t.Run("tiers resolve independently", func(t *testing.T) {
		t.Setenv(LogLevelEnvVar, "debug")
		t.Setenv(LogFileEnvVar, "")
		t.Setenv(LogFormatEnvVar, "")

		level, file, format := resolveLoggerSettings("", "", "", config.LoggerConfig{Format: "verbose"})
		if level != "debug" || file != "" || format != "verbose" {
			t.Errorf("got %q/%q/%q", level, file, format)
		}
	})
}

func TestInitLoggerRejectsUnknownLevel(t *testing.T) {
	t.Setenv(LogLevelEnvVar, "")
	t.Setenv(LogFileEnvVar, "")
	t.Setenv(LogFormatEnvVar, "")

	if _, err := initLogger("loud", "", "", config.LoggerConfig{}); err == nil {
		t.Error("expected error for unknown log level")
	}
}
