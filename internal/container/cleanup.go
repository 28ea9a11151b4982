package container

import (
	"context"
	"strings"
	"sync"

	"btr/internal/config"
	"btr/internal/execution"

	"github.com/fatih/color"
)

// Handle is the opaque reference to the containers and network created for
// one run. The compose project owns them all, so one teardown covers the
// full set.
type Handle struct {
	ComposeFile string
	Service     string
	compose     []string
}

// Cleanup guarantees teardown of created containers and networks on every
// exit path, exactly once per run, unless retention was requested.
type Cleanup struct {
	cfg    *config.Config
	runner execution.CommandRunner

	mu     sync.Mutex
	once   sync.Once
	handle *Handle
}

// NewCleanup creates the cleanup manager for one run.
func NewCleanup(cfg *config.Config, runner execution.CommandRunner) *Cleanup {
	return &Cleanup{cfg: cfg, runner: runner}
}

// Register records the container set created by the build or execution
// driver. Nothing is torn down until something was registered.
func (c *Cleanup) Register(compose []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.handle == nil {
		c.handle = &Handle{
			ComposeFile: c.cfg.ComposeFile,
			Service:     c.cfg.Service,
			compose:     compose,
		}
	}
}

// Release tears down the registered containers and network. It is safe to
// call from any exit path; only the first call acts. Failures are logged
// as warnings and never override the already-computed run outcome.
func (c *Cleanup) Release(ctx context.Context) {
	c.once.Do(func() {
		c.mu.Lock()
		handle := c.handle
		c.mu.Unlock()
		if handle == nil {
			return
		}
		if c.cfg.KeepContainers {
			color.Yellow("Keeping containers as requested")
			color.White("  Inspect with: %s -f %s ps %s", strings.Join(handle.compose, " "), handle.ComposeFile, handle.Service)
			color.White("  Tear down with: %s -f %s down --remove-orphans", strings.Join(handle.compose, " "), handle.ComposeFile)
			return
		}
		args := append([]string{}, handle.compose[1:]...)
		args = append(args, "-f", handle.ComposeFile, "down", "--remove-orphans")
		// Teardown must still run after an interrupt, so it gets a fresh
		// context rather than the possibly-canceled run context.
		if ctx.Err() != nil {
			ctx = context.Background()
		}
		res := c.runner.Run(ctx, execution.Command{Name: handle.compose[0], Args: args})
		if res.Err != nil || res.ExitCode != 0 {
			msg := strings.TrimSpace(res.Stderr)
			if msg == "" && res.Err != nil {
				msg = res.Err.Error()
			}
			color.Yellow("Warning: container cleanup failed: %s", msg)
		}
	})
}
