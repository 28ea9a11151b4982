package container

import (
	"context"
	"strings"
	"testing"

	"btr/internal/config"
)

func TestCleanup_ReleaseExactlyOnce(t *testing.T) {
	runner := &fakeRunner{}
	c := NewCleanup(config.New(), runner)
	c.Register([]string{"docker", "compose"})

	ctx := context.Background()
	c.Release(ctx)
	c.Release(ctx)
	c.Release(ctx)

	if len(runner.calls) != 1 {
		t.Fatalf("expected exactly one teardown, got %d", len(runner.calls))
	}
	got := runner.calls[0].String()
	if !strings.Contains(got, "down --remove-orphans") {
		t.Errorf("expected a compose down, got %q", got)
	}
}

func TestCleanup_NothingRegistered(t *testing.T) {
	runner := &fakeRunner{}
	c := NewCleanup(config.New(), runner)

	c.Release(context.Background())

	if len(runner.calls) != 0 {
		t.Errorf("nothing was created, nothing should be torn down; got %v", runner.calls)
	}
}

func TestCleanup_RetentionSkipsTeardown(t *testing.T) {
	cfg := config.New()
	cfg.KeepContainers = true
	runner := &fakeRunner{}
	c := NewCleanup(cfg, runner)
	c.Register([]string{"docker", "compose"})

	c.Release(context.Background())

	if len(runner.calls) != 0 {
		t.Errorf("retention must skip teardown, got %v", runner.calls)
	}
}

func TestCleanup_RunsAfterCancellation(t *testing.T) {
	runner := &fakeRunner{}
	c := NewCleanup(config.New(), runner)
	c.Register([]string{"docker", "compose"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c.Release(ctx)

	if len(runner.calls) != 1 {
		t.Fatalf("teardown must still run after an interrupt, got %d calls", len(runner.calls))
	}
}
