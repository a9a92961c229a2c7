package shared

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger(t *testing.T) {
	t.Run("writes to provided writer", func(t *testing.T) {
		var buf bytes.Buffer
		logger := NewLogger(&buf)
		logger.Info("hello", "screen", "courses")

		if !strings.Contains(buf.String(), "hello") || !strings.Contains(buf.String(), "screen=courses") {
			t.Errorf("unexpected log output: %q", buf.String())
		}
	})

	t.Run("WithLogger adds fields", func(t *testing.T) {
		var buf bytes.Buffer
		child := WithLogger(NewLogger(&buf), "component", "loader")
		child.Warn("fallback")

		if !strings.Contains(buf.String(), "component=loader") {
			t.Errorf("expected component field, got %q", buf.String())
		}
	})

	t.Run("NewFileLogger creates parent dirs", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "tui.log")
		logger, err := NewFileLogger(path)
		if err != nil {
			t.Fatalf("NewFileLogger() error = %v", err)
		}
		logger.Info("written")

		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read log file: %v", err)
		}
		if !strings.Contains(string(data), "written") {
			t.Errorf("expected log line in file, got %q", string(data))
		}
	})
}

func TestGenerateID(t *testing.T) {
	a, b := GenerateID(), GenerateID()
	if a == b {
		t.Error("expected distinct ids")
	}
	if len(a) != 36 {
		t.Errorf("expected uuid string, got %q", a)
	}
}

func TestOpener(t *testing.T) {
	restore := func(rt func() string) {
		t.Cleanup(func() {
			getRuntime = rt
			execCommand = exec.CommandContext
		})
	}

	t.Run("unsupported platform", func(t *testing.T) {
		restore(getRuntime)
		getRuntime = func() string { return "plan9" }

		err := OpenURL(context.Background(), "https://example.com")
		if !errors.Is(err, ErrUnsupported) {
			t.Errorf("expected ErrUnsupported, got %v", err)
		}
	})

	t.Run("launcher failure is reported", func(t *testing.T) {
		restore(getRuntime)
		getRuntime = func() string { return "linux" }
		execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "false")
		}

		if err := OpenURL(context.Background(), "market://details?id=x"); err == nil {
			t.Error("expected error from failing launcher")
		}
	})

	t.Run("scheme probe reads handler", func(t *testing.T) {
		restore(getRuntime)
		getRuntime = func() string { return "linux" }
		execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
			if name != "xdg-mime" || args[len(args)-1] != "x-scheme-handler/truecoach" {
				t.Errorf("unexpected probe command %s %v", name, args)
			}
			return exec.CommandContext(ctx, "echo", "truecoach.desktop")
		}

		ok, err := SystemOpener{}.CanOpen(context.Background(), "truecoach://")
		if err != nil || !ok {
			t.Errorf("CanOpen() = %v, %v; want true, nil", ok, err)
		}
	})

	t.Run("scheme probe without handler", func(t *testing.T) {
		restore(getRuntime)
		getRuntime = func() string { return "linux" }
		execCommand = func(ctx context.Context, name string, args ...string) *exec.Cmd {
			return exec.CommandContext(ctx, "true")
		}

		ok, err := CanOpenScheme(context.Background(), "truecoach")
		if err != nil || ok {
			t.Errorf("CanOpenScheme() = %v, %v; want false, nil", ok, err)
		}
	})

	t.Run("non-linux probe reports false", func(t *testing.T) {
		restore(getRuntime)
		getRuntime = func() string { return "darwin" }

		ok, err := CanOpenScheme(context.Background(), "truecoach")
		if err != nil || ok {
			t.Errorf("CanOpenScheme() = %v, %v; want false, nil", ok, err)
		}
	})
}
