package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Flags holds the command-line flag values handed over by the cli layer.
// Changed marks flags the user set explicitly, so an untouched flag never
// shadows an environment variable or .env entry.
type Flags struct {
	RepoURL      string
	Branch       string
	BuildType    string
	BuildJobs    int
	TestSuite    string
	CppOnly      bool
	PythonOnly   bool
	PythonScope  string
	PythonJobs   int
	CppTestArgs  string
	PythonArgs   string
	ExcludeTests []string
	ComposeFile  string
	Workspace    string
	EnvFile      string
	Keep         bool
	NoCache      bool
	Force        bool
	Verbose      bool

	Changed map[string]bool
}

// changed reports whether the named flag was set on the command line.
func (f Flags) changed(name string) bool {
	return f.Changed != nil && f.Changed[name]
}

// Resolve builds the immutable run configuration from, in order of
// precedence: explicit CLI flags, BTC_* environment variables, entries in
// a .env file, built-in defaults. It is a pure function of its inputs and
// performs no side effects beyond reading the environment and .env file.
func Resolve(flags Flags) (*Config, error) {
	envFile := ".env"
	if flags.EnvFile != "" {
		envFile = flags.EnvFile
	}
	fileVals, err := godotenv.Read(envFile)
	if err != nil {
		// A missing .env file is fine; an explicitly requested one is not.
		if flags.changed("env-file") {
			return nil, fmt.Errorf("read env file %s: %w", envFile, err)
		}
		fileVals = map[string]string{}
	}

	r := resolver{flags: flags, file: fileVals}
	cfg := New()

	cfg.RepoURL = r.str("repo-url", flags.RepoURL, "BTC_REPO_URL", cfg.RepoURL)
	cfg.Branch = r.str("branch", flags.Branch, "BTC_REPO_BRANCH", cfg.Branch)
	cfg.BuildType = r.str("build-type", flags.BuildType, "BTC_BUILD_TYPE", cfg.BuildType)
	cfg.TestSuite = r.str("test-suite", flags.TestSuite, "BTC_TEST_SUITE", cfg.TestSuite)
	cfg.PythonScope = r.str("python-tests", flags.PythonScope, "BTC_PYTHON_TEST_SCOPE", cfg.PythonScope)
	cfg.CppTestArgs = r.str("cpp-args", flags.CppTestArgs, "BTC_CPP_TEST_ARGS", cfg.CppTestArgs)
	cfg.PythonArgs = r.str("python-args", flags.PythonArgs, "BTC_PYTHON_TEST_ARGS", cfg.PythonArgs)
	cfg.ComposeFile = r.str("compose-file", flags.ComposeFile, "BTC_COMPOSE_FILE", cfg.ComposeFile)
	cfg.Workspace = r.str("workspace", flags.Workspace, "BTC_WORKSPACE", cfg.Workspace)
	cfg.HistoryDSN = r.str("", "", "BTC_HISTORY_DSN", "")

	if cfg.PythonJobs, err = r.integer("python-jobs", flags.PythonJobs, "BTC_PYTHON_TEST_JOBS", cfg.PythonJobs); err != nil {
		return nil, err
	}
	if cfg.BuildJobs, err = r.integer("build-jobs", flags.BuildJobs, "BTC_BUILD_JOBS", cfg.BuildJobs); err != nil {
		return nil, err
	}

	cfg.KeepContainers = r.boolean("keep-containers", flags.Keep, "BTC_KEEP_CONTAINERS", false)
	cfg.Verbose = r.boolean("verbose", flags.Verbose, "BTC_VERBOSE", false)
	cfg.NoCache = r.boolean("no-cache", flags.NoCache, "BTC_NO_CACHE", false)
	cfg.Force = r.boolean("force", flags.Force, "BTC_FORCE_UPDATE", false)

	// The suite shortcuts are CLI-only and beat everything else.
	if flags.CppOnly {
		cfg.TestSuite = "cpp"
	}
	if flags.PythonOnly {
		cfg.TestSuite = "python"
	}

	cfg.ExcludeTests = r.excludes(flags.ExcludeTests)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolver looks up one option across the precedence chain.
type resolver struct {
	flags Flags
	file  map[string]string
}

// lookup returns the highest-precedence raw value below the CLI level.
func (r resolver) lookup(envKey string) (string, bool) {
	if v, ok := os.LookupEnv(envKey); ok && v != "" {
		return v, true
	}
	if v, ok := r.file[envKey]; ok && v != "" {
		return v, true
	}
	return "", false
}

func (r resolver) str(flagName, flagVal, envKey, def string) string {
	if flagName != "" && r.flags.changed(flagName) {
		return flagVal
	}
	if v, ok := r.lookup(envKey); ok {
		return v
	}
	return def
}

func (r resolver) integer(flagName string, flagVal int, envKey string, def int) (int, error) {
	if r.flags.changed(flagName) {
		return flagVal, nil
	}
	if v, ok := r.lookup(envKey); ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("invalid value for %s: %q is not an integer", envKey, v)
		}
		return n, nil
	}
	return def, nil
}

func (r resolver) boolean(flagName string, flagVal bool, envKey string, def bool) bool {
	if r.flags.changed(flagName) {
		return flagVal
	}
	if v, ok := r.lookup(envKey); ok {
		return parseBool(v)
	}
	return def
}

// excludes merges the repeatable CLI flag with the comma-separated
// BTC_EXCLUDE_TESTS entry; an explicit CLI list replaces the rest.
func (r resolver) excludes(flagVals []string) []string {
	if len(flagVals) > 0 {
		return flagVals
	}
	if v, ok := r.lookup("BTC_EXCLUDE_TESTS"); ok {
		return strings.Split(v, ",")
	}
	return nil
}

// parseBool accepts the usual spellings for env-style booleans.
func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "true", "1", "yes", "on":
		return true
	}
	return false
}
