package main

import (
	"fmt"
	"os"

	"github.com/umfat/helpdesk/pkg/config"
	"github.com/umfat/helpdesk/pkg/logger"
)

const (
	// LogFileEnvVar is the environment variable for the log file path.
	LogFileEnvVar = "LOG_FILE"
	// LogLevelEnvVar is the environment variable for the log level.
	LogLevelEnvVar = "LOG_LEVEL"
	// LogFormatEnvVar is the environment variable for the log format.
	LogFormatEnvVar = "LOG_FORMAT"

	// DefaultLogLevel is used when no other tier sets a level.
	DefaultLogLevel = "info"
	// DefaultLogFormat is used when no other tier sets a format.
	DefaultLogFormat = "simple"
)

// resolveLoggerSettings applies the priority ladder to each setting
// independently: CLI flag > environment variable > config file > default.
// Unset CLI flags arrive as empty strings.
func resolveLoggerSettings(cliLevel, cliFile, cliFormat string, cfg config.LoggerConfig) (level, file, format string) {
	level = firstNonEmpty(cliLevel, os.Getenv(LogLevelEnvVar), cfg.Level, DefaultLogLevel)
	file = firstNonEmpty(cliFile, os.Getenv(LogFileEnvVar), cfg.File)
	format = firstNonEmpty(cliFormat, os.Getenv(LogFormatEnvVar), cfg.Format, DefaultLogFormat)
	return level, file, format
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// initLogger resolves the logging settings and initializes the default
// logger. Returns a cleanup function when logging to a file.
func initLogger(cliLevel, cliFile, cliFormat string, cfg config.LoggerConfig) (func(), error) {
	logLevel, logFile, logFormat := resolveLoggerSettings(cliLevel, cliFile, cliFormat, cfg)

	level, err := logger.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	var output *os.File
	var cleanup func()
	if logFile != "" {
		file, cleanupFn, err := logger.OpenLogFile(logFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		output = file
		cleanup = cleanupFn
	} else {
		output = os.Stderr
	}

	logger.Init(level, output, logFormat)

	return cleanup, nil
}
