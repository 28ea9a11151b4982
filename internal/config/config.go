package config

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Config holds the resolved, immutable configuration for one run.
// Built once by Resolve and never mutated afterwards; all business logic
// sees only this struct, never the environment or flag set directly.
type Config struct {
	// Repository settings
	RepoURL string
	Branch  string

	// Build settings
	BuildType string
	BuildJobs int

	// Test selection
	TestSuite    string // "cpp", "python" or "both"
	PythonScope  string // "all", "standard", "quick" or literal test name(s)
	PythonJobs   int
	CppTestArgs  string
	PythonArgs   string
	ExcludeTests []string // sorted, deduplicated

	// Container settings
	ComposeFile    string
	Service        string
	Workspace      string
	KeepContainers bool
	NoCache        bool

	// Provisioning settings
	Force bool

	// Output settings
	Verbose        bool
	OutputJSONFile string
	OutputJSONDir  string

	// Optional run history sink (MySQL DSN); empty disables recording
	HistoryDSN string
}

// New creates a new Config with defaults
func New() *Config {
	return &Config{
		RepoURL:        DefaultRepoURL,
		Branch:         DefaultBranch,
		BuildType:      DefaultBuildType,
		TestSuite:      DefaultTestSuite,
		PythonScope:    DefaultPythonScope,
		PythonJobs:     DefaultPythonJobs,
		ComposeFile:    DefaultComposeFile,
		Service:        DefaultService,
		Workspace:      DefaultWorkspace,
		OutputJSONFile: DefaultOutputJSONFile,
		OutputJSONDir:  DefaultOutputJSONDir,
	}
}

// Validate checks the configuration before any external process runs.
// It also normalizes the exclude list into a sorted set.
func (c *Config) Validate() error {
	if !contains(ValidTestSuites, c.TestSuite) {
		return fmt.Errorf("invalid test suite %q (must be one of: %s)",
			c.TestSuite, strings.Join(ValidTestSuites, ", "))
	}
	if !contains(ValidBuildTypes, c.BuildType) {
		return fmt.Errorf("invalid build type %q (must be one of: %s)",
			c.BuildType, strings.Join(ValidBuildTypes, ", "))
	}
	if c.PythonJobs < 1 {
		return fmt.Errorf("python jobs must be a positive integer, got %d", c.PythonJobs)
	}
	if c.BuildJobs < 0 {
		return fmt.Errorf("build jobs must not be negative, got %d", c.BuildJobs)
	}
	if c.RepoURL == "" {
		return fmt.Errorf("repository URL must not be empty")
	}
	if c.Branch == "" {
		return fmt.Errorf("branch must not be empty")
	}
	c.ExcludeTests = normalizeExcludes(c.ExcludeTests)
	return nil
}

// RunsCpp reports whether the cpp phase is selected.
func (c *Config) RunsCpp() bool {
	return c.TestSuite == "cpp" || c.TestSuite == "both"
}

// RunsPython reports whether the python phase is selected.
func (c *Config) RunsPython() bool {
	return c.TestSuite == "python" || c.TestSuite == "both"
}

// GetOutputPath returns the full path to the output JSON file.
// Resolves to an absolute path so run and results always read/write the
// same file regardless of cwd.
func (c *Config) GetOutputPath() string {
	p := filepath.Join(c.OutputJSONDir, c.OutputJSONFile)
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// normalizeExcludes deduplicates, drops empties and sorts the exclude set
// so phase invocations are deterministic.
func normalizeExcludes(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
