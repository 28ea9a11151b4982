package execution

import (
	"context"
	"reflect"
	"testing"

	"btr/internal/config"
	"btr/internal/domain"
)

func testConfig() *config.Config {
	cfg := config.New()
	return cfg
}

func TestPythonArgs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   []string
	}{
		{
			name:   "quick scope yields the fixed test list",
			mutate: func(c *config.Config) { c.PythonScope = "quick" },
			want: []string{
				"wallet_basic.py", "mempool_accept.py", "p2p_invalid_messages.py",
				"--jobs=4",
			},
		},
		{
			name:   "standard scope adds no selection",
			mutate: func(c *config.Config) { c.PythonScope = "standard" },
			want:   []string{"--jobs=4"},
		},
		{
			name:   "all scope adds the extended flags",
			mutate: func(c *config.Config) { c.PythonScope = "all" },
			want:   []string{"--extended", "--extended-only", "--jobs=4"},
		},
		{
			name:   "literal scope passes through unchanged",
			mutate: func(c *config.Config) { c.PythonScope = "wallet_basic.py feature_fee_estimation.py" },
			want:   []string{"wallet_basic.py", "feature_fee_estimation.py", "--jobs=4"},
		},
		{
			name: "jobs follow configuration",
			mutate: func(c *config.Config) {
				c.PythonScope = "standard"
				c.PythonJobs = 16
			},
			want: []string{"--jobs=16"},
		},
		{
			name: "passthrough args come after jobs",
			mutate: func(c *config.Config) {
				c.PythonScope = "standard"
				c.PythonArgs = "--timeout-factor=2 --nocleanup"
			},
			want: []string{"--jobs=4", "--timeout-factor=2", "--nocleanup"},
		},
		{
			name: "one exclude pair per excluded test",
			mutate: func(c *config.Config) {
				c.PythonScope = "standard"
				c.ExcludeTests = []string{"feature_dbcrash", "feature_pruning"}
			},
			want: []string{
				"--jobs=4",
				"--exclude", "feature_dbcrash",
				"--exclude", "feature_pruning",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(cfg)
			got := PythonArgs(cfg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PythonArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCppArgs(t *testing.T) {
	tests := []struct {
		name string
		args string
		want []string
	}{
		{"empty passthrough", "", []string{}},
		{"verbatim fields", "--run_test=getarg_tests --log_level=all", []string{"--run_test=getarg_tests", "--log_level=all"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.CppTestArgs = tt.args
			got := CppArgs(cfg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("CppArgs() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPhasesFor(t *testing.T) {
	tests := []struct {
		suite string
		want  []domain.Phase
	}{
		{"cpp", []domain.Phase{domain.PhaseCpp}},
		{"python", []domain.Phase{domain.PhasePython}},
		{"both", []domain.Phase{domain.PhaseCpp, domain.PhasePython}},
	}

	for _, tt := range tests {
		t.Run(tt.suite, func(t *testing.T) {
			cfg := testConfig()
			cfg.TestSuite = tt.suite
			got := PhasesFor(cfg)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("PhasesFor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHarnessCommand(t *testing.T) {
	t.Run("cpp phase launches the unit-test binary", func(t *testing.T) {
		cfg := testConfig()
		cfg.CppTestArgs = "--run_test=uint256_tests"
		got := HarnessCommand(domain.PhaseCpp, cfg)
		want := []string{"build/src/test/test_bitcoin", "--run_test=uint256_tests"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("HarnessCommand(cpp) = %v, want %v", got, want)
		}
	})

	t.Run("python phase launches the test runner", func(t *testing.T) {
		cfg := testConfig()
		cfg.PythonScope = "quick"
		got := HarnessCommand(domain.PhasePython, cfg)
		want := []string{
			"test/functional/test_runner.py",
			"wallet_basic.py", "mempool_accept.py", "p2p_invalid_messages.py",
			"--jobs=4",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("HarnessCommand(python) = %v, want %v", got, want)
		}
	})
}

func TestDriver_ComposeRunArgs(t *testing.T) {
	cfg := testConfig()
	cfg.PythonScope = "standard"
	cfg.ExcludeTests = []string{"feature_dbcrash", "feature_pruning"}
	cfg.TestSuite = "python"

	driver := NewDriver(cfg, nil, []string{"docker", "compose"})
	got := driver.ComposeRunArgs(domain.PhasePython)
	want := []string{
		"compose", "-f", "docker-compose.yml", "run", "--rm", "bitcoin-tests",
		"test/functional/test_runner.py",
		"--jobs=4",
		"--exclude", "feature_dbcrash",
		"--exclude", "feature_pruning",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ComposeRunArgs() = %v, want %v", got, want)
	}
}

func TestDriver_RunPhase(t *testing.T) {
	cfg := testConfig()
	runner := &fakeRunner{results: map[string]Result{
		"docker": {ExitCode: 1, Stdout: "some failures", Stderr: "boom"},
	}}
	driver := NewDriver(cfg, runner, []string{"docker", "compose"})

	res := driver.RunPhase(context.Background(), domain.PhaseCpp)
	if res.Phase != domain.PhaseCpp {
		t.Errorf("expected cpp phase, got %s", res.Phase)
	}
	if res.ExitCode != 1 {
		t.Errorf("expected exit code 1, got %d", res.ExitCode)
	}
	if res.Output == "" {
		t.Error("expected an output excerpt")
	}
}

// fakeRunner scripts results by command name.
type fakeRunner struct {
	results map[string]Result
	calls   []Command
}

func (f *fakeRunner) Run(ctx context.Context, cmd Command) Result {
	f.calls = append(f.calls, cmd)
	return f.results[cmd.Name]
}

func (f *fakeRunner) Stream(ctx context.Context, cmd Command) Result {
	return f.Run(ctx, cmd)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}
