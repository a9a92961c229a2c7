// package formatter exports training plans and calendar events to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/shared"
)

// Format names an export format.
type Format string

const (
	CSV      Format = "csv"
	Markdown Format = "md"
	Text     Format = "txt"
)

// ParseFormat accepts csv, md/markdown and txt/text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "csv":
		return CSV, nil
	case "md", "markdown":
		return Markdown, nil
	case "txt", "text", "":
		return Text, nil
	}
	return "", fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, s)
}

// PlanToCSV writes one row per exercise with columns: Day, Date, Workout, Exercise, Sets, Reps, Weight, Notes.
// Days are emitted Monday first.
func PlanToCSV(plan models.WeekPlan) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Day", "Date", "Workout", "Exercise", "Sets", "Reps", "Weight", "Notes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, day := range models.Weekdays {
		for _, w := range plan.Day(day) {
			for _, e := range w.Exercises {
				record := []string{
					day,
					w.Date.Format(time.DateOnly),
					w.Title,
					e.Name,
					strconv.Itoa(e.Sets),
					strconv.Itoa(e.Reps),
					e.Weight,
					e.Notes,
				}
				if err := writer.Write(record); err != nil {
					return nil, fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// PlanToMarkdown renders the week as a heading per day with numbered exercises.
func PlanToMarkdown(weekStart time.Time, plan models.WeekPlan) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# Week of %s\n\n", weekStart.Format("January 2, 2006")))
	for _, day := range models.Weekdays {
		buf.WriteString(fmt.Sprintf("## %s\n\n", day))

		workouts := plan.Day(day)
		if len(workouts) == 0 {
			buf.WriteString("_Rest day_\n\n")
			continue
		}

		for _, w := range workouts {
			buf.WriteString(fmt.Sprintf("### %s\n\n", w.Title))
			if w.Notes != "" {
				buf.WriteString(fmt.Sprintf("**Notes**: %s\n\n", w.Notes))
			}
			for i, e := range w.Exercises {
				buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, e.Name, volume(e)))
			}
			buf.WriteString("\n")
		}
	}

	return buf.Bytes()
}

// PlanToText renders the week as plain text.
func PlanToText(weekStart time.Time, plan models.WeekPlan) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Week of %s\n", weekStart.Format("Jan 2, 2006")))
	for _, day := range models.Weekdays {
		workouts := plan.Day(day)
		if len(workouts) == 0 {
			buf.WriteString(fmt.Sprintf("\n%s: rest\n", day))
			continue
		}

		buf.WriteString(fmt.Sprintf("\n%s\n", day))
		for _, w := range workouts {
			buf.WriteString(fmt.Sprintf("  %s [%s]\n", w.Title, w.ID))
			for _, e := range w.Exercises {
				buf.WriteString(fmt.Sprintf("    - %s%s\n", e.Name, volume(e)))
			}
		}
	}

	return buf.Bytes()
}

func volume(e models.Exercise) string {
	var s string
	if e.HasVolume() {
		s = fmt.Sprintf(" (%dx%d)", e.Sets, e.Reps)
	}
	if e.Weight != "" {
		s += " @ " + e.Weight
	}
	return s
}

// EventsToCSV converts events to CSV format with columns: ID, Date, Time, Title, Location, Description
func EventsToCSV(events []models.CalendarEvent) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"ID", "Date", "Time", "Title", "Location", "Description"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, e := range events {
		record := []string{e.ID, e.Date.Format(time.DateOnly), e.Time, e.Title, e.Location, e.Description}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// EventsToMarkdown lists events as a bullet list.
func EventsToMarkdown(events []models.CalendarEvent) []byte {
	var buf bytes.Buffer
	buf.WriteString("# Calendar\n\n")
	for _, e := range events {
		buf.WriteString(fmt.Sprintf("- **%s** %s: %s", e.Date.Format("Mon Jan 2, 2006"), e.Time, e.Title))
		if e.Location != "" {
			buf.WriteString(fmt.Sprintf(" (%s)", e.Location))
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// EventsToText lists events one per line.
func EventsToText(events []models.CalendarEvent) []byte {
	var buf bytes.Buffer
	for _, e := range events {
		buf.WriteString(fmt.Sprintf("%s  %-8s  %s", e.Date.Format(time.DateOnly), e.Time, e.Title))
		if e.Location != "" {
			buf.WriteString(fmt.Sprintf(" • %s", e.Location))
		}
		buf.WriteString("\n")
	}
	return buf.Bytes()
}

// FormatPlan renders plan in the given format.
func FormatPlan(f Format, weekStart time.Time, plan models.WeekPlan) ([]byte, error) {
	switch f {
	case CSV:
		return PlanToCSV(plan)
	case Markdown:
		return PlanToMarkdown(weekStart, plan), nil
	default:
		return PlanToText(weekStart, plan), nil
	}
}

// FormatEvents renders events in the given format.
func FormatEvents(f Format, events []models.CalendarEvent) ([]byte, error) {
	switch f {
	case CSV:
		return EventsToCSV(events)
	case Markdown:
		return EventsToMarkdown(events), nil
	default:
		return EventsToText(events), nil
	}
}

// WriteExport writes data to path, defaulting to base.<format>.
func WriteExport(f Format, data []byte, path, base string) (string, error) {
	if path == "" {
		path = fmt.Sprintf("%s.%s", base, f)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s file: %w", f, err)
	}

	return path, nil
}
