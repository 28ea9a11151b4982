package prereq

import (
	"context"
	"fmt"
	"os"
	"strings"

	"btr/internal/config"
	"btr/internal/domain"
	"btr/internal/execution"
)

// Checker validates required external tools and daemon availability
// before any mutation happens.
type Checker struct {
	cfg    *config.Config
	runner execution.CommandRunner
}

// NewChecker creates a prerequisite checker.
func NewChecker(cfg *config.Config, runner execution.CommandRunner) *Checker {
	return &Checker{cfg: cfg, runner: runner}
}

// Check runs every probe without short-circuiting so all failures are
// visible at once. Any failing probe must abort the run before
// provisioning begins.
func (c *Checker) Check(ctx context.Context) domain.PrerequisiteReport {
	var report domain.PrerequisiteReport
	report.Probes = append(report.Probes,
		c.probeBinary("git"),
		c.probeBinary("docker"),
		c.probeDaemon(ctx),
		c.probeCompose(ctx),
		c.probeFile(c.cfg.ComposeFile),
		c.probeFile("Dockerfile"),
		c.probeWorkspace(ctx),
	)
	return report
}

// probeBinary checks that a required tool resolves on PATH.
func (c *Checker) probeBinary(name string) domain.Probe {
	probe := domain.Probe{Name: fmt.Sprintf("%s in PATH", name)}
	if _, err := c.runner.LookPath(name); err != nil {
		probe.Detail = fmt.Sprintf("%s not found; please install it and ensure it is in PATH", name)
		return probe
	}
	probe.OK = true
	return probe
}

// probeDaemon checks that the container engine daemon is reachable.
func (c *Checker) probeDaemon(ctx context.Context) domain.Probe {
	probe := domain.Probe{Name: "docker daemon reachable"}
	res := c.runner.Run(ctx, execution.Command{Name: "docker", Args: []string{"info"}})
	if res.Err != nil || res.ExitCode != 0 {
		probe.Detail = "docker daemon is not reachable; is Docker running?"
		if msg := strings.TrimSpace(res.Stderr); msg != "" {
			probe.Detail = msg
		}
		return probe
	}
	probe.OK = true
	return probe
}

// probeCompose checks that an orchestration command resolves, either the
// compose plugin or the standalone docker-compose binary.
func (c *Checker) probeCompose(ctx context.Context) domain.Probe {
	probe := domain.Probe{Name: "docker compose available"}
	if _, err := ResolveComposeCommand(ctx, c.runner); err != nil {
		probe.Detail = err.Error()
		return probe
	}
	probe.OK = true
	return probe
}

// probeFile checks that a required static configuration file exists.
func (c *Checker) probeFile(path string) domain.Probe {
	probe := domain.Probe{Name: fmt.Sprintf("%s present", path)}
	if _, err := os.Stat(path); err != nil {
		probe.Detail = fmt.Sprintf("required file %s is missing", path)
		return probe
	}
	probe.OK = true
	return probe
}

// probeWorkspace checks that the workspace is either absent or an existing
// git working tree. A matching-vs-foreign checkout is the provisioner's
// call; here only structural validity is probed.
func (c *Checker) probeWorkspace(ctx context.Context) domain.Probe {
	probe := domain.Probe{Name: fmt.Sprintf("workspace %s usable", c.cfg.Workspace)}
	info, err := os.Stat(c.cfg.Workspace)
	if os.IsNotExist(err) {
		probe.OK = true
		return probe
	}
	if err != nil {
		probe.Detail = err.Error()
		return probe
	}
	if !info.IsDir() {
		probe.Detail = fmt.Sprintf("workspace path %s exists but is not a directory", c.cfg.Workspace)
		return probe
	}
	res := c.runner.Run(ctx, execution.Command{
		Name: "git",
		Args: []string{"-C", c.cfg.Workspace, "rev-parse", "--is-inside-work-tree"},
	})
	if res.Err != nil || res.ExitCode != 0 {
		probe.Detail = fmt.Sprintf("workspace %s exists but is not a git working tree", c.cfg.Workspace)
		return probe
	}
	probe.OK = true
	return probe
}

// ResolveComposeCommand returns the orchestration command to use,
// preferring the docker compose plugin over the legacy standalone binary.
func ResolveComposeCommand(ctx context.Context, runner execution.CommandRunner) ([]string, error) {
	res := runner.Run(ctx, execution.Command{Name: "docker", Args: []string{"compose", "version"}})
	if res.Err == nil && res.ExitCode == 0 {
		return []string{"docker", "compose"}, nil
	}
	if _, err := runner.LookPath("docker-compose"); err == nil {
		return []string{"docker-compose"}, nil
	}
	return nil, fmt.Errorf("neither 'docker compose' nor 'docker-compose' is available")
}
