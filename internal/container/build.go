package container

import (
	"context"
	"fmt"
	"strings"

	"btr/internal/config"
	"btr/internal/execution"
)

// Builder builds the test image from the externally defined recipe,
// parameterized by the run configuration. Image caching is fully delegated
// to the container engine.
type Builder struct {
	cfg     *config.Config
	runner  execution.CommandRunner
	compose []string
}

// NewBuilder creates a container build driver.
func NewBuilder(cfg *config.Config, runner execution.CommandRunner, compose []string) *Builder {
	return &Builder{cfg: cfg, runner: runner, compose: compose}
}

// BuildArgs returns the full compose build invocation.
func (b *Builder) BuildArgs() []string {
	args := append([]string{}, b.compose[1:]...)
	args = append(args, "-f", b.cfg.ComposeFile, "build")
	if b.cfg.NoCache {
		args = append(args, "--no-cache")
	}
	args = append(args, "--build-arg", fmt.Sprintf("BUILD_TYPE=%s", b.cfg.BuildType))
	if b.cfg.BuildJobs > 0 {
		args = append(args, "--build-arg", fmt.Sprintf("CMAKE_BUILD_PARALLEL_LEVEL=%d", b.cfg.BuildJobs))
	}
	args = append(args, b.cfg.Service)
	return args
}

// Build runs the image build, streaming build output live. A non-zero exit
// fails the run before any phase starts.
func (b *Builder) Build(ctx context.Context) error {
	cmd := execution.Command{
		Name: b.compose[0],
		Args: b.BuildArgs(),
		Env:  []string{"DOCKER_BUILDKIT=1"},
	}
	res := b.runner.Stream(ctx, cmd)
	if res.Err != nil {
		return fmt.Errorf("image build: %w", res.Err)
	}
	if res.ExitCode != 0 {
		msg := strings.TrimSpace(res.Stderr)
		if msg == "" {
			msg = strings.TrimSpace(res.Stdout)
		}
		return fmt.Errorf("image build failed (exit %d): %s", res.ExitCode, msg)
	}
	return nil
}
