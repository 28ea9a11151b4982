package execution

import (
	"context"
	"strings"
	"testing"
)

// stubRunner is a non-exec CommandRunner used to verify decorators keep
// injected runners in place.
type stubRunner struct{}

func (stubRunner) Run(ctx context.Context, cmd Command) Result    { return Result{} }
func (stubRunner) Stream(ctx context.Context, cmd Command) Result { return Result{} }
func (stubRunner) LookPath(name string) (string, error)           { return "/usr/bin/" + name, nil }

func TestTailWriter(t *testing.T) {
	tests := []struct {
		name   string
		max    int
		writes []string
		want   string
	}{
		{
			name:   "keeps everything under the limit",
			max:    16,
			writes: []string{"hello ", "world"},
			want:   "hello world",
		},
		{
			name:   "keeps only the tail over the limit",
			max:    4,
			writes: []string{"abcdef"},
			want:   "cdef",
		},
		{
			name:   "trailing writes displace earlier ones",
			max:    6,
			writes: []string{"first", "second"},
			want:   "second",
		},
		{
			name:   "empty",
			max:    8,
			writes: nil,
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTailWriter(tt.max)
			for _, s := range tt.writes {
				n, err := w.Write([]byte(s))
				if err != nil {
					t.Fatalf("Write() error: %v", err)
				}
				if n != len(s) {
					t.Fatalf("Write() = %d, want %d", n, len(s))
				}
			}
			if got := w.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWithOutput(t *testing.T) {
	t.Run("redirects the exec-backed runner", func(t *testing.T) {
		var sink strings.Builder
		got := WithOutput(NewExecRunner(), &sink)
		er, ok := got.(*ExecRunner)
		if !ok {
			t.Fatalf("WithOutput() = %T, want *ExecRunner", got)
		}
		if er.Stdout != &sink || er.Stderr != &sink {
			t.Error("streamed output should go to the given writer")
		}
	})

	t.Run("leaves other runners untouched", func(t *testing.T) {
		var sink strings.Builder
		stub := stubRunner{}
		if got := WithOutput(stub, &sink); got != stub {
			t.Errorf("WithOutput() = %T, want the original runner", got)
		}
	})
}

func TestCommand_String(t *testing.T) {
	cmd := Command{Name: "docker", Args: []string{"compose", "-f", "docker-compose.yml", "build"}}
	want := "docker compose -f docker-compose.yml build"
	if got := cmd.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if !strings.HasPrefix(cmd.String(), cmd.Name) {
		t.Error("rendered command should start with the binary name")
	}
}
