package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"testing"

	"btr/internal/config"
	"btr/internal/execution"
)

// fakeRunner records git invocations and scripts their results.
type fakeRunner struct {
	results map[string]execution.Result
	calls   []string
}

func (f *fakeRunner) Run(ctx context.Context, cmd execution.Command) execution.Result {
	f.calls = append(f.calls, cmd.String())
	if res, ok := f.results[cmd.String()]; ok {
		return res
	}
	return execution.Result{ExitCode: 0}
}

func (f *fakeRunner) Stream(ctx context.Context, cmd execution.Command) execution.Result {
	return f.Run(ctx, cmd)
}

func (f *fakeRunner) LookPath(name string) (string, error) {
	return "/usr/bin/" + name, nil
}

func (f *fakeRunner) called(fragment string) bool {
	for _, c := range f.calls {
		if strings.Contains(c, fragment) {
			return true
		}
	}
	return false
}

// provisionEnv gives each test its own working directory, with the
// workspace optionally pre-created.
func provisionEnv(t *testing.T, workspaceExists bool) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chdir(cwd) })

	cfg := config.New()
	if workspaceExists {
		if err := os.Mkdir(cfg.Workspace, 0755); err != nil {
			t.Fatal(err)
		}
	}
	return cfg
}

func TestProvisioner_FreshClone(t *testing.T) {
	cfg := provisionEnv(t, false)
	runner := &fakeRunner{}
	p := NewProvisioner(cfg, runner)

	if err := p.Provision(context.Background()); err != nil {
		t.Fatalf("Provision() unexpected error: %v", err)
	}

	want := fmt.Sprintf("git clone --depth 1 --branch %s %s %s", cfg.Branch, cfg.RepoURL, cfg.Workspace)
	if len(runner.calls) != 1 || runner.calls[0] != want {
		t.Errorf("expected single clone %q, got %v", want, runner.calls)
	}
}

func TestProvisioner_CloneFailureSurfacesDiagnostic(t *testing.T) {
	cfg := provisionEnv(t, false)
	runner := &fakeRunner{results: map[string]execution.Result{
		fmt.Sprintf("git clone --depth 1 --branch %s %s %s", cfg.Branch, cfg.RepoURL, cfg.Workspace): {
			ExitCode: 128,
			Stderr:   "fatal: Remote branch nope not found in upstream origin",
		},
	}}
	p := NewProvisioner(cfg, runner)

	err := p.Provision(context.Background())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Remote branch nope not found") {
		t.Errorf("expected git's own diagnostic in the error, got %v", err)
	}
}

func TestProvisioner_UpdateExisting(t *testing.T) {
	cfg := provisionEnv(t, true)
	ws := cfg.Workspace
	runner := &fakeRunner{results: map[string]execution.Result{
		"git -C " + ws + " remote get-url origin": {Stdout: cfg.RepoURL + "\n"},
		"git -C " + ws + " status --porcelain":    {Stdout: ""},
	}}
	p := NewProvisioner(cfg, runner)

	if err := p.Provision(context.Background()); err != nil {
		t.Fatalf("Provision() unexpected error: %v", err)
	}
	if !runner.called("fetch --depth 1 origin " + cfg.Branch) {
		t.Errorf("expected a fetch, calls: %v", runner.calls)
	}
	if !runner.called("checkout -B " + cfg.Branch + " FETCH_HEAD") {
		t.Errorf("expected a checkout, calls: %v", runner.calls)
	}
	if runner.called("clone") {
		t.Errorf("existing workspace must not be cloned again, calls: %v", runner.calls)
	}
	if runner.called("reset --hard") {
		t.Errorf("clean workspace must not be reset, calls: %v", runner.calls)
	}
}

func TestProvisioner_NotAWorkTree(t *testing.T) {
	cfg := provisionEnv(t, true)
	runner := &fakeRunner{results: map[string]execution.Result{
		"git -C " + cfg.Workspace + " rev-parse --is-inside-work-tree": {ExitCode: 128, Stderr: "fatal: not a git repository"},
	}}
	p := NewProvisioner(cfg, runner)

	err := p.Provision(context.Background())
	if !errors.Is(err, ErrNotAWorkTree) {
		t.Errorf("expected ErrNotAWorkTree, got %v", err)
	}
}

func TestProvisioner_RemoteMismatch(t *testing.T) {
	cfg := provisionEnv(t, true)
	runner := &fakeRunner{results: map[string]execution.Result{
		"git -C " + cfg.Workspace + " remote get-url origin": {Stdout: "https://github.com/someone/else\n"},
	}}
	p := NewProvisioner(cfg, runner)

	err := p.Provision(context.Background())
	if !errors.Is(err, ErrRemoteMismatch) {
		t.Errorf("expected ErrRemoteMismatch, got %v", err)
	}
	if runner.called("fetch") {
		t.Errorf("foreign checkout must never be fetched into, calls: %v", runner.calls)
	}
}

func TestProvisioner_DirtyWorkspace(t *testing.T) {
	dirty := map[string]execution.Result{
		"git -C bitcoin remote get-url origin": {Stdout: config.DefaultRepoURL + "\n"},
		"git -C bitcoin status --porcelain":    {Stdout: " M src/validation.cpp\n"},
	}

	t.Run("fails without force", func(t *testing.T) {
		cfg := provisionEnv(t, true)
		runner := &fakeRunner{results: dirty}
		p := NewProvisioner(cfg, runner)

		err := p.Provision(context.Background())
		if !errors.Is(err, ErrDirtyWorkspace) {
			t.Errorf("expected ErrDirtyWorkspace, got %v", err)
		}
		if runner.called("reset") || runner.called("fetch") {
			t.Errorf("dirty workspace must be left intact, calls: %v", runner.calls)
		}
	})

	t.Run("force discards and updates", func(t *testing.T) {
		cfg := provisionEnv(t, true)
		cfg.Force = true
		runner := &fakeRunner{results: dirty}
		p := NewProvisioner(cfg, runner)

		if err := p.Provision(context.Background()); err != nil {
			t.Fatalf("Provision() unexpected error: %v", err)
		}
		if !runner.called("reset --hard") {
			t.Errorf("expected a reset under force, calls: %v", runner.calls)
		}
		if !runner.called("fetch --depth 1 origin " + cfg.Branch) {
			t.Errorf("expected a fetch after reset, calls: %v", runner.calls)
		}
	})
}

func TestSameRemote(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"https://github.com/bitcoin/bitcoin", "https://github.com/bitcoin/bitcoin", true},
		{"https://github.com/bitcoin/bitcoin.git", "https://github.com/bitcoin/bitcoin", true},
		{"https://github.com/bitcoin/bitcoin/", "https://github.com/bitcoin/bitcoin", true},
		{"https://github.com/fork/bitcoin", "https://github.com/bitcoin/bitcoin", false},
	}

	for _, tt := range tests {
		t.Run(tt.a, func(t *testing.T) {
			if got := sameRemote(tt.a, tt.b); got != tt.want {
				t.Errorf("sameRemote(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}
