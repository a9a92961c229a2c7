package tasks

import "fmt"

// ProgressUpdate represents a progress event during a multi-step operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within the chain
	Total   int    // Total steps in the chain, terminal included
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Phase identifies which kind of attempt is running.
type Phase int

const (
	FetchManifest Phase = iota
	FetchItems
	LoadFallback
	ProbeScheme
	OpenStoreApp
	OpenStorePage
	SearchMarketplace
	DownloadDocument
)

func (p Phase) String() string {
	switch p {
	case FetchManifest:
		return "fetch_manifest"
	case FetchItems:
		return "fetch_items"
	case LoadFallback:
		return "load_fallback"
	case ProbeScheme:
		return "probe_scheme"
	case OpenStoreApp:
		return "open_store_app"
	case OpenStorePage:
		return "open_store_page"
	case SearchMarketplace:
		return "search_marketplace"
	case DownloadDocument:
		return "download_document"
	default:
		return ""
	}
}

// sendProgress delivers u without blocking; updates are dropped when nobody is listening.
func sendProgress(ch chan<- ProgressUpdate, u ProgressUpdate) {
	if ch == nil {
		return
	}
	select {
	case ch <- u:
	default:
	}
}

func attemptUpdate(step, total int, a attemptInfo) ProgressUpdate {
	return ProgressUpdate{
		Phase:   a.phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s...", step, total, a.name),
	}
}

func attemptFailedUpdate(step, total int, a attemptInfo, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   a.phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, a.name, err),
	}
}

func attemptDoneUpdate(step, total int, a attemptInfo) ProgressUpdate {
	return ProgressUpdate{
		Phase:   a.phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, a.name),
	}
}

func downloadUpdate(filename string, done bool) ProgressUpdate {
	msg := fmt.Sprintf("Downloading %s...", filename)
	if done {
		msg = fmt.Sprintf("✓ %s saved", filename)
	}
	return ProgressUpdate{Phase: DownloadDocument, Step: 1, Total: 1, Message: msg, Data: filename}
}
