package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/AbdelazizMoustafa10m/steplens/internal/logging"
	"github.com/AbdelazizMoustafa10m/steplens/internal/tekton"
)

// Global flag values accessible to all subcommands.
var (
	flagVerbose bool
	flagQuiet   bool
	flagConfig  string
	flagDir     string
	flagNoColor bool
)

// rootCmd is the base command for steplens.
var rootCmd = &cobra.Command{
	Use:   "steplens",
	Short: "Inspect the steps of Tekton TaskRuns",
	Long: `steplens reads Tekton TaskRun and Task resources (YAML or JSON, as
printed by "kubectl get -o yaml") and shows each TaskRun's steps in the order
the Task declares them, with their status, exit code, image and duration.

Steps that never ran because an earlier step failed are shown as "not run"
instead of the stale status the controller reports for them.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Check env vars for flags not explicitly set on command line.
		if !cmd.Flags().Changed("verbose") && os.Getenv("STEPLENS_VERBOSE") != "" {
			flagVerbose = true
		}
		if !cmd.Flags().Changed("quiet") && os.Getenv("STEPLENS_QUIET") != "" {
			flagQuiet = true
		}
		if !cmd.Flags().Changed("no-color") && (os.Getenv("NO_COLOR") != "" || os.Getenv("STEPLENS_NO_COLOR") != "") {
			flagNoColor = true
		}

		logging.Setup(logging.Options{
			Verbose: flagVerbose,
			Quiet:   flagQuiet,
			JSON:    logging.JSONFromEnv(os.LookupEnv),
			NoColor: flagNoColor,
		})

		// Styles in render and config output degrade to plain text.
		if flagNoColor {
			lipgloss.SetColorProfile(termenv.Ascii)
		}

		if flagDir != "" {
			if err := os.Chdir(flagDir); err != nil {
				return fmt.Errorf("changing directory to %s: %w", flagDir, err)
			}
		}

		return nil
	},
}

func init() {
	registerPersistentFlags(rootCmd, true)
}

// registerPersistentFlags adds the global flags to cmd. When bind is false the
// flags use throwaway storage so generators can build an independent tree.
func registerPersistentFlags(cmd *cobra.Command, bind bool) {
	pf := cmd.PersistentFlags()
	if !bind {
		pf.BoolP("verbose", "v", false, "Enable verbose (debug) output (env: STEPLENS_VERBOSE)")
		pf.BoolP("quiet", "q", false, "Suppress all output except errors (env: STEPLENS_QUIET)")
		pf.String("config", "", "Path to steplens.toml config file")
		pf.String("dir", "", "Override working directory")
		pf.Bool("no-color", false, "Disable colored output (env: STEPLENS_NO_COLOR, NO_COLOR)")
		return
	}
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable verbose (debug) output (env: STEPLENS_VERBOSE)")
	pf.BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress all output except errors (env: STEPLENS_QUIET)")
	pf.StringVar(&flagConfig, "config", "", "Path to steplens.toml config file")
	pf.StringVar(&flagDir, "dir", "", "Override working directory")
	pf.BoolVar(&flagNoColor, "no-color", false, "Disable colored output (env: STEPLENS_NO_COLOR, NO_COLOR)")
}

// Execute runs the root command and returns the exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", tekton.ErrorMessage(err))
		return 1
	}
	return 0
}

// NewRootCmd returns a new instance of the root command for use in external
// tools such as the shell completion generator and man page generator. The
// returned tree shares subcommands with the global root but registers its own
// persistent flags so generated docs and completions include them.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:               rootCmd.Use,
		Short:             rootCmd.Short,
		Long:              rootCmd.Long,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: rootCmd.PersistentPreRunE,
	}
	registerPersistentFlags(cmd, false)

	for _, child := range rootCmd.Commands() {
		cmd.AddCommand(child)
	}
	return cmd
}
