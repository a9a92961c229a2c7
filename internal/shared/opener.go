package shared

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

var getRuntime = func() string { return runtime.GOOS }

// execCommand is swapped in tests.
var execCommand = exec.CommandContext

// OpenURL hands url to the system's default handler.
//
// Supports macOS, Linux, and Windows platforms. The call waits for the launcher
// so a missing handler surfaces as an error.
func OpenURL(ctx context.Context, url string) error {
	var cmd *exec.Cmd
	rt := getRuntime()
	switch rt {
	case "darwin":
		cmd = execCommand(ctx, "open", url)
	case "linux":
		cmd = execCommand(ctx, "xdg-open", url)
	case "windows":
		cmd = execCommand(ctx, "rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, rt)
	}

	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("failed to open %s: %w (%s)", url, err, strings.TrimSpace(string(out)))
	}

	return nil
}

// CanOpenScheme reports whether a handler is registered for the custom URL scheme.
//
// Only Linux exposes a cheap query (xdg-mime); other platforms report false.
func CanOpenScheme(ctx context.Context, scheme string) (bool, error) {
	scheme = strings.TrimSuffix(strings.TrimSuffix(scheme, "://"), ":")
	if scheme == "" {
		return false, fmt.Errorf("%w: empty scheme", ErrInvalidArgument)
	}

	if getRuntime() != "linux" {
		return false, nil
	}

	var out bytes.Buffer
	cmd := execCommand(ctx, "xdg-mime", "query", "default", "x-scheme-handler/"+scheme)
	cmd.Stdout = &out
	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("scheme probe failed: %w", err)
	}

	return strings.TrimSpace(out.String()) != "", nil
}

// SystemOpener adapts [OpenURL] and [CanOpenScheme] to an interface-shaped value.
type SystemOpener struct{}

func (SystemOpener) Open(ctx context.Context, url string) error { return OpenURL(ctx, url) }

func (SystemOpener) CanOpen(ctx context.Context, url string) (bool, error) {
	scheme, _, ok := strings.Cut(url, ":")
	if !ok {
		return false, fmt.Errorf("%w: %q has no scheme", ErrInvalidArgument, url)
	}
	return CanOpenScheme(ctx, scheme)
}
