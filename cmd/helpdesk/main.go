// Command helpdesk is a console support-agent system. A triage agent routes
// customer questions to billing, technical, or general specialists through
// an LLM backend.
//
// Usage:
//
//	helpdesk triage
//	helpdesk support --config helpdesk.yaml
//	helpdesk validate --config helpdesk.yaml
package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"sort"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/umfat/helpdesk/pkg/config"
	"github.com/umfat/helpdesk/pkg/support"
)

// CLI defines the command-line interface.
type CLI struct {
	Triage   TriageCmd   `cmd:"" help:"Interactive triage chat: route questions via handoff to specialist agents."`
	Support  SupportCmd  `cmd:"" help:"Interactive support chat with issue classification, guardrails, and streaming."`
	Version  VersionCmd  `cmd:"" help:"Show version information."`
	Validate ValidateCmd `cmd:"" help:"Validate a configuration file."`

	Config    string `short:"c" help:"Path to config file." type:"path"`
	LogLevel  string `help:"Log level (debug, info, warn, error). Overrides LOG_LEVEL and the config file."`
	LogFile   string `help:"Log file path (empty = stderr). Overrides LOG_FILE and the config file."`
	LogFormat string `help:"Log format (simple, verbose). Overrides LOG_FORMAT and the config file."`
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("helpdesk version %s\n", version)
	return nil
}

// ValidateCmd validates a configuration file.
type ValidateCmd struct{}

func (c *ValidateCmd) Run(cli *CLI, cfg *config.Config) error {
	if cli.Config == "" {
		return fmt.Errorf("--config is required for validate command")
	}

	user := support.NewUserContext(cfg.User)
	registry, err := support.NewSupportTeam(user).ToolRegistry()
	if err != nil {
		return err
	}

	names := make([]string, 0, registry.Count())
	for _, info := range registry.List() {
		names = append(names, info.Name)
	}
	sort.Strings(names)

	fmt.Printf("Configuration %s is valid.\n", cli.Config)
	fmt.Printf("  Provider: %s\n", cfg.LLM.Provider)
	fmt.Printf("  Model:    %s\n", cfg.LLM.Model)
	fmt.Printf("  Customer: %s <%s>\n", cfg.User.Name, cfg.User.Email)
	fmt.Printf("  Tools:    %s\n", strings.Join(names, ", "))
	return nil
}

// loadConfig loads the config file when given, zero-config otherwise.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.ZeroConfig(), nil
}

func main() {
	if err := config.LoadEnvFiles(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("helpdesk"),
		kong.Description("Console support-agent system with LLM-backed triage, handoff, and guardrails."),
		kong.UsageOnError(),
	)

	cfg, err := loadConfig(cli.Config)
	ctx.FatalIfErrorf(err)

	cleanup, err := initLogger(cli.LogLevel, cli.LogFile, cli.LogFormat, cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	err = ctx.Run(&cli, cfg)
	ctx.FatalIfErrorf(err)
}
