package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/steplens/internal/config"
	"github.com/AbdelazizMoustafa10m/steplens/internal/logging"
)

// configCmd is the parent "config" namespace command. It groups the debug,
// validate and init subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management commands",
	Long:  "Inspect, validate, and create steplens configuration.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// configDebugCmd implements "steplens config debug".
var configDebugCmd = &cobra.Command{
	Use:   "debug",
	Short: "Show resolved configuration with source annotations",
	Long: `Display the fully-resolved configuration showing each value and
the source where it came from (cli flag, environment variable, config file, or default).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, _, err := loadAndResolveConfig(nil)
		if err != nil {
			return err
		}
		printResolvedConfig(cmd.OutOrStdout(), resolved)
		return nil
	},
}

// configValidateCmd implements "steplens config validate".
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration and report issues",
	Long:  "Check the configuration for errors and warnings.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resolved, meta, err := loadAndResolveConfig(nil)
		if err != nil {
			return err
		}
		result := config.Validate(resolved.Config, meta)
		printValidationResult(cmd.OutOrStdout(), result)
		if result.HasErrors() {
			return fmt.Errorf("configuration has %d error(s)", len(result.Errors()))
		}
		return nil
	},
}

var configInitForce bool

// configInitCmd implements "steplens config init".
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented steplens.toml with default values",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.WriteTemplate(".", configInitForce)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing steplens.toml")
	configCmd.AddCommand(configDebugCmd)
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

// loadAndResolveConfig loads and resolves the configuration from all sources
// (file, env, CLI flags). It returns the resolved config, the TOML metadata
// (nil when no file was found), and any loading error.
//
// When flagConfig is set, that path is used directly. Otherwise,
// config.FindConfigFile searches upward from the current directory.
func loadAndResolveConfig(overrides *config.CLIOverrides) (*config.ResolvedConfig, *toml.MetaData, error) {
	logger := logging.New("config")

	var (
		fileCfg *config.Config
		meta    *toml.MetaData
	)

	cfgPath := flagConfig
	if cfgPath == "" {
		found, err := config.FindConfigFile(".")
		if err != nil {
			return nil, nil, fmt.Errorf("finding config file: %w", err)
		}
		cfgPath = found
	}

	if cfgPath != "" {
		fc, md, err := config.LoadFromFile(cfgPath)
		if err != nil {
			return nil, nil, err
		}
		fileCfg = fc
		meta = &md
		logger.Debug("using config file", "path", cfgPath)
	}

	resolved := config.Resolve(config.NewDefaults(), fileCfg, os.LookupEnv, overrides)
	resolved.Path = cfgPath

	return resolved, meta, nil
}

// ---- Lipgloss styles --------------------------------------------------------

// sourceStyle returns a lipgloss style for a given ConfigSource.
func sourceStyle(src config.ConfigSource) lipgloss.Style {
	switch src {
	case config.SourceFile:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("12")) // bright blue
	case config.SourceEnv:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("11")) // bright yellow
	case config.SourceCLI:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("9")) // bright red
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("10")) // bright green
	}
}

var (
	styleHeader   = lipgloss.NewStyle().Bold(true)
	styleSection  = lipgloss.NewStyle().Bold(true)
	styleErrorLbl = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	styleWarnLbl  = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	styleSuccess  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

const fieldWidth = 20 // column width for field names

// printResolvedConfig writes the resolved configuration with the source of
// every value.
func printResolvedConfig(out io.Writer, rc *config.ResolvedConfig) {
	printTitle(out, "Configuration Debug")

	if rc.Path != "" {
		fmt.Fprintf(out, "Config file: %s\n", rc.Path)
	} else {
		fmt.Fprintln(out, "Config file: none found")
	}
	fmt.Fprintln(out)

	s := rc.Config.Steps
	fmt.Fprintln(out, styleSection.Render("[steps]"))
	printField(out, "unnamed_prefix", fmt.Sprintf("%q", s.UnnamedPrefix), rc.Sources["steps.unnamed_prefix"])
	printField(out, "unnamed_index_base", fmt.Sprint(s.IndexBase()), rc.Sources["steps.unnamed_index_base"])
	printField(out, "error_reason", fmt.Sprintf("%q", s.ErrorReason), rc.Sources["steps.error_reason"])
	printField(out, "clear_unexecuted", fmt.Sprint(s.ClearsUnexecuted()), rc.Sources["steps.clear_unexecuted"])
	fmt.Fprintln(out)

	fmt.Fprintln(out, styleSection.Render("[load]"))
	printField(out, "concurrency", fmt.Sprint(rc.Config.Load.Concurrency), rc.Sources["load.concurrency"])
	fmt.Fprintln(out)

	d := rc.Config.Display
	fmt.Fprintln(out, styleSection.Render("[display]"))
	printField(out, "time_format", fmt.Sprintf("%q", d.TimeFormat), rc.Sources["display.time_format"])
	printField(out, "json", fmt.Sprint(d.JSON), rc.Sources["display.json"])
}

func printTitle(out io.Writer, title string) {
	fmt.Fprintln(out, styleHeader.Render(title))
	fmt.Fprintln(out, strings.Repeat("=", len(title)))
	fmt.Fprintln(out)
}

// printField writes a single key = value (source: ...) line.
func printField(out io.Writer, name, value string, src config.ConfigSource) {
	padded := fmt.Sprintf("  %-*s", fieldWidth, name)
	srcLabel := sourceStyle(src).Render(fmt.Sprintf("(source: %s)", src))
	fmt.Fprintf(out, "%s = %-24s %s\n", padded, value, srcLabel)
}

// printValidationResult writes the formatted validation report.
func printValidationResult(out io.Writer, result *config.ValidationResult) {
	printTitle(out, "Configuration Validation")

	errs := result.Errors()
	warns := result.Warnings()

	if len(errs) == 0 && len(warns) == 0 {
		fmt.Fprintln(out, styleSuccess.Render("No issues found."))
		return
	}

	printIssues(out, styleErrorLbl.Render("Errors:"), errs)
	printIssues(out, styleWarnLbl.Render("Warnings:"), warns)

	fmt.Fprintf(out, "%d error(s), %d warning(s)\n", len(errs), len(warns))
}

func printIssues(out io.Writer, label string, issues []config.ValidationIssue) {
	if len(issues) == 0 {
		return
	}
	fmt.Fprintln(out, label)
	for _, issue := range issues {
		fmt.Fprintf(out, "  [%s] %s\n", issue.Field, issue.Message)
	}
	fmt.Fprintln(out)
}
