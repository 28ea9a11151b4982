package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"btr/internal/config"
)

// Flags holds command-line flags
type Flags struct {
	RepoURL     string
	Branch      string
	BuildType   string
	BuildJobs   int
	TestSuite   string
	CppOnly     bool
	PythonOnly  bool
	PythonScope string
	PythonJobs  int
	CppArgs     string
	PythonArgs  string
	Excludes    []string
	ComposeFile string
	Workspace   string
	EnvFile     string
	Keep        bool
	NoCache     bool
	Force       bool
	Verbose     bool
}

// ToConfigFlags converts CLI flags to config flags, recording which flags
// were explicitly set so the resolver can apply precedence correctly.
func (f *Flags) ToConfigFlags(cmd *cobra.Command) config.Flags {
	changed := make(map[string]bool)
	cmd.Flags().Visit(func(flag *pflag.Flag) {
		changed[flag.Name] = true
	})
	return config.Flags{
		RepoURL:      f.RepoURL,
		Branch:       f.Branch,
		BuildType:    f.BuildType,
		BuildJobs:    f.BuildJobs,
		TestSuite:    f.TestSuite,
		CppOnly:      f.CppOnly,
		PythonOnly:   f.PythonOnly,
		PythonScope:  f.PythonScope,
		PythonJobs:   f.PythonJobs,
		CppTestArgs:  f.CppArgs,
		PythonArgs:   f.PythonArgs,
		ExcludeTests: f.Excludes,
		ComposeFile:  f.ComposeFile,
		Workspace:    f.Workspace,
		EnvFile:      f.EnvFile,
		Keep:         f.Keep,
		NoCache:      f.NoCache,
		Force:        f.Force,
		Verbose:      f.Verbose,
		Changed:      changed,
	}
}
