package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"btr/internal/config"
	"btr/internal/execution"
)

// Provisioning failure classes. Each wraps the underlying git diagnostic
// so the operator sees the tool's own message.
var (
	ErrNotAWorkTree   = errors.New("workspace exists but is not a git working tree")
	ErrRemoteMismatch = errors.New("workspace tracks a different remote")
	ErrDirtyWorkspace = errors.New("workspace has uncommitted local changes")
)

// Provisioner clones or updates the target source tree into the local
// workspace, idempotently. It never silently overwrites a foreign checkout
// and never silently discards local state.
type Provisioner struct {
	cfg    *config.Config
	runner execution.CommandRunner
}

// NewProvisioner creates a repository provisioner.
func NewProvisioner(cfg *config.Config, runner execution.CommandRunner) *Provisioner {
	return &Provisioner{cfg: cfg, runner: runner}
}

// Provision makes the workspace hold the requested branch of the requested
// repository. Absent workspace: fresh shallow clone. Present and matching:
// fetch and update. Present but foreign or dirty: fail (dirty is overridden
// by the force option).
func (p *Provisioner) Provision(ctx context.Context) error {
	if _, err := os.Stat(p.cfg.Workspace); os.IsNotExist(err) {
		return p.clone(ctx)
	}
	return p.update(ctx)
}

func (p *Provisioner) clone(ctx context.Context) error {
	res := p.runner.Stream(ctx, execution.Command{
		Name: "git",
		Args: []string{"clone", "--depth", "1", "--branch", p.cfg.Branch, p.cfg.RepoURL, p.cfg.Workspace},
	})
	if err := gitFailure("clone", res); err != nil {
		return err
	}
	return nil
}

func (p *Provisioner) update(ctx context.Context) error {
	ws := p.cfg.Workspace

	res := p.runner.Run(ctx, execution.Command{
		Name: "git", Args: []string{"-C", ws, "rev-parse", "--is-inside-work-tree"},
	})
	if res.Err != nil || res.ExitCode != 0 {
		return fmt.Errorf("%w: %s", ErrNotAWorkTree, ws)
	}

	res = p.runner.Run(ctx, execution.Command{
		Name: "git", Args: []string{"-C", ws, "remote", "get-url", "origin"},
	})
	if err := gitFailure("remote get-url", res); err != nil {
		return err
	}
	remote := strings.TrimSpace(res.Stdout)
	if !sameRemote(remote, p.cfg.RepoURL) {
		return fmt.Errorf("%w: %s has origin %s, want %s", ErrRemoteMismatch, ws, remote, p.cfg.RepoURL)
	}

	res = p.runner.Run(ctx, execution.Command{
		Name: "git", Args: []string{"-C", ws, "status", "--porcelain"},
	})
	if err := gitFailure("status", res); err != nil {
		return err
	}
	if strings.TrimSpace(res.Stdout) != "" {
		if !p.cfg.Force {
			return fmt.Errorf("%w: %s (use --force to discard them)", ErrDirtyWorkspace, ws)
		}
		res = p.runner.Run(ctx, execution.Command{
			Name: "git", Args: []string{"-C", ws, "reset", "--hard"},
		})
		if err := gitFailure("reset", res); err != nil {
			return err
		}
	}

	res = p.runner.Stream(ctx, execution.Command{
		Name: "git", Args: []string{"-C", ws, "fetch", "--depth", "1", "origin", p.cfg.Branch},
	})
	if err := gitFailure("fetch", res); err != nil {
		return err
	}

	res = p.runner.Run(ctx, execution.Command{
		Name: "git", Args: []string{"-C", ws, "checkout", "-B", p.cfg.Branch, "FETCH_HEAD"},
	})
	if err := gitFailure("checkout", res); err != nil {
		return err
	}
	return nil
}

// gitFailure converts a failed git invocation into an error carrying the
// tool's own diagnostic text (network, auth, unknown branch and so on).
func gitFailure(op string, res execution.Result) error {
	if res.Err != nil {
		return fmt.Errorf("git %s: %w", op, res.Err)
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		return fmt.Errorf("git %s failed (exit %d): %s", op, res.ExitCode, msg)
	}
	return nil
}

// sameRemote compares remote URLs ignoring a trailing ".git".
func sameRemote(a, b string) bool {
	trim := func(s string) string {
		return strings.TrimSuffix(strings.TrimSuffix(strings.TrimSpace(s), "/"), ".git")
	}
	return trim(a) == trim(b)
}
