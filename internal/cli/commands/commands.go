package commands

import (
	"btr/internal/cli"
	"btr/internal/config"
	"btr/internal/execution"
	"btr/internal/storage"
	"btr/internal/ui"

	"github.com/spf13/cobra"
)

// Commands holds all CLI commands
type Commands struct {
	Run     *RunCommand
	Check   *CheckCommand
	Config  *ConfigCommand
	Results *ResultsCommand
}

// NewCommands creates all commands with dependencies
func NewCommands(cfg *config.Config) *Commands {
	runner := execution.NewExecRunner()
	formatter := ui.NewFormatter(cfg)
	store := storage.NewJSONStorage(cfg)
	viewer := ui.NewResultViewer()

	return &Commands{
		Run:     NewRunCommand(cfg, runner, formatter, store),
		Check:   NewCheckCommand(cfg, runner),
		Config:  NewConfigCommand(cfg),
		Results: NewResultsCommand(store, viewer),
	}
}

// Register registers all commands with cobra
func (c *Commands) Register(rootCmd *cobra.Command, flags *cli.Flags, cfg *config.Config) {
	resolve := func(cmd *cobra.Command, args []string) error {
		resolved, err := config.Resolve(flags.ToConfigFlags(cmd))
		if err != nil {
			return err
		}
		*cfg = *resolved
		return nil
	}

	// Run command
	runCmd := &cobra.Command{
		Use:     "run",
		Short:   "Provision, build and run the Bitcoin Core test suites",
		Long:    "Clone or update the Bitcoin Core source tree, build the test image and run the selected test phases inside it, reporting one aggregated result",
		RunE:    c.Run.Execute,
		PreRunE: resolve,
	}
	addRunFlags(runCmd, flags)
	rootCmd.AddCommand(runCmd)

	// Check command
	checkCmd := &cobra.Command{
		Use:     "check",
		Short:   "Check prerequisites without running anything",
		Long:    "Probe for git, docker, the docker daemon, a compose command and the static configuration files, reporting every failure at once",
		RunE:    c.Check.Execute,
		PreRunE: resolve,
	}
	addRunFlags(checkCmd, flags)
	rootCmd.AddCommand(checkCmd)

	// Config command
	configCmd := &cobra.Command{
		Use:     "config",
		Short:   "Show the resolved configuration",
		Long:    "Print the configuration after merging CLI flags, BTC_* environment variables, the .env file and defaults",
		RunE:    c.Config.Execute,
		PreRunE: resolve,
	}
	addRunFlags(configCmd, flags)
	rootCmd.AddCommand(configCmd)

	// Results command
	resultsCmd := &cobra.Command{
		Use:     "results",
		Short:   "View the last run interactively",
		Long:    "Display the phases of the last test run in an interactive viewer",
		RunE:    c.Results.Execute,
		PreRunE: resolve,
	}
	rootCmd.AddCommand(resultsCmd)
}

// addRunFlags binds the full option surface shared by run, check and
// config.
func addRunFlags(cmd *cobra.Command, flags *cli.Flags) {
	cmd.Flags().StringVarP(&flags.RepoURL, "repo-url", "r", config.DefaultRepoURL, "Git repository URL to clone Bitcoin Core from")
	cmd.Flags().StringVarP(&flags.Branch, "branch", "b", config.DefaultBranch, "Branch to provision")
	cmd.Flags().StringVar(&flags.BuildType, "build-type", config.DefaultBuildType, "CMake build type (Debug, Release, RelWithDebInfo, MinSizeRel)")
	cmd.Flags().IntVar(&flags.BuildJobs, "build-jobs", 0, "Number of parallel build jobs (0 = engine default)")
	cmd.Flags().StringVar(&flags.TestSuite, "test-suite", config.DefaultTestSuite, "Which test suite(s) to run: cpp, python or both")
	cmd.Flags().BoolVar(&flags.CppOnly, "cpp-only", false, "Run only C++ unit tests (shortcut for --test-suite cpp)")
	cmd.Flags().BoolVar(&flags.PythonOnly, "python-only", false, "Run only Python functional tests (shortcut for --test-suite python)")
	cmd.Flags().StringVar(&flags.PythonScope, "python-tests", config.DefaultPythonScope, "Python test scope: 'all', 'standard', 'quick', or specific test name(s)")
	cmd.Flags().IntVar(&flags.PythonJobs, "python-jobs", config.DefaultPythonJobs, "Number of parallel jobs for Python tests")
	cmd.Flags().StringVar(&flags.CppArgs, "cpp-args", "", "Extra arguments passed verbatim to the C++ test binary")
	cmd.Flags().StringVar(&flags.PythonArgs, "python-args", "", "Extra arguments passed verbatim to the Python test runner")
	cmd.Flags().StringArrayVar(&flags.Excludes, "exclude-test", nil, "Exclude specific Python test(s) (can be used multiple times)")
	cmd.Flags().StringVar(&flags.ComposeFile, "compose-file", config.DefaultComposeFile, "Compose file defining the test service")
	cmd.Flags().StringVar(&flags.Workspace, "workspace", config.DefaultWorkspace, "Directory to provision the source tree into")
	cmd.Flags().StringVar(&flags.EnvFile, "env-file", "", "Path to a .env configuration file (default .env)")
	cmd.Flags().BoolVar(&flags.Keep, "keep-containers", false, "Keep containers and network after execution")
	cmd.Flags().BoolVar(&flags.NoCache, "no-cache", false, "Rebuild the image without the engine cache")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Discard uncommitted workspace changes when updating")
	cmd.Flags().BoolVarP(&flags.Verbose, "verbose", "v", false, "Enable verbose output")
	cmd.MarkFlagsMutuallyExclusive("test-suite", "cpp-only", "python-only")
}
