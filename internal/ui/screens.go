package ui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/repositories"
	"github.com/desertthunder/better/internal/tasks"
)

// listScreen backs every list-shaped screen.
type listScreen struct {
	list    list.Model
	loading bool
	banner  string
}

func (s *listScreen) view() string {
	if s.loading {
		return styles.dim.Render(fmt.Sprintf("Loading %s...", strings.ToLower(s.list.Title)))
	}
	if s.banner != "" {
		return fmt.Sprintf("%s\n\n%s", styles.warning.Render(s.banner), s.list.View())
	}
	return s.list.View()
}

// truecoachScreen shows the resolver chain while it runs.
type truecoachScreen struct {
	opening  bool
	progress tasks.ProgressUpdate
	last     *tasks.Resolution
	updates  <-chan tasks.ProgressUpdate
	done     <-chan Msg
}

// wait blocks for the next progress update, then for the final resolution.
func (s *truecoachScreen) wait(seq int) tea.Cmd {
	updates, done := s.updates, s.done
	if done == nil {
		return nil
	}
	return func() tea.Msg {
		if updates != nil {
			if u, ok := <-updates; ok {
				return progressMsg(TrueCoachTab, seq, u)
			}
		}
		return <-done
	}
}

func (s *truecoachScreen) view() string {
	title := styles.title.Render("TrueCoach")
	body := "Press enter to open the TrueCoach app."
	if s.opening {
		body = "Opening TrueCoach..."
		if s.progress.Message != "" {
			body = fmt.Sprintf("%s\n%s", body, styles.dim.Render(fmt.Sprintf("[%d/%d] %s", s.progress.Step, s.progress.Total, s.progress.Message)))
		}
	} else if s.last != nil {
		body = fmt.Sprintf("%s\n%s", body, styles.dim.Render("Last opened: "+s.last.URL))
	}
	return fmt.Sprintf("%s\n%s", title, body)
}

// trainingScreen shows one weekday of the plan at a time.
type trainingScreen struct {
	plan    *tasks.Plan
	loading bool
	day     int
	cursor  int
}

func newTrainingScreen(now time.Time) trainingScreen {
	day := int(now.Weekday()+6) % 7
	return trainingScreen{day: day}
}

type exerciseRef struct {
	workout  models.Workout
	index    int
	exercise models.Exercise
}

func (s *trainingScreen) exercises() []exerciseRef {
	if s.plan == nil {
		return nil
	}
	var refs []exerciseRef
	for _, w := range s.plan.Days.Day(models.Weekdays[s.day]) {
		for i, e := range w.Exercises {
			refs = append(refs, exerciseRef{workout: w, index: i, exercise: e})
		}
	}
	return refs
}

func (s *trainingScreen) handleKeys(msg tea.KeyMsg, m *Model) tea.Cmd {
	k := m.keys
	switch {
	case key.Matches(msg, k.left):
		s.day = (s.day + 6) % 7
		s.cursor = 0
	case key.Matches(msg, k.right):
		s.day = (s.day + 1) % 7
		s.cursor = 0
	case key.Matches(msg, k.up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, k.down):
		if s.cursor < len(s.exercises())-1 {
			s.cursor++
		}
	case key.Matches(msg, k.enter):
		refs := s.exercises()
		if s.cursor < len(refs) {
			e := refs[s.cursor].exercise
			return m.openURL(TrainingTab, e.Name, e.Video)
		}
	}
	return nil
}

func (s *trainingScreen) view() string {
	if s.loading || s.plan == nil {
		return styles.dim.Render("Loading training plan...")
	}

	var b strings.Builder
	days := make([]string, len(models.Weekdays))
	for i, d := range models.Weekdays {
		if i == s.day {
			days[i] = styles.activeTab.Render(d[:3])
		} else {
			days[i] = styles.tab.Render(d[:3])
		}
	}
	b.WriteString(strings.Join(days, ""))
	b.WriteString("\n\n")

	source := "Weekly template"
	if s.plan.FromPartner {
		source = "From TrueCoach"
	}
	b.WriteString(styles.dim.Render(fmt.Sprintf("Week of %s • %s", s.plan.WeekStart.Format("Jan 2"), source)))
	b.WriteString("\n\n")

	workouts := s.plan.Days.Day(models.Weekdays[s.day])
	if len(workouts) == 0 {
		b.WriteString("Rest day")
		return b.String()
	}

	n := 0
	for _, w := range workouts {
		b.WriteString(styles.selected.Render(w.Title))
		b.WriteString("\n")
		if w.Notes != "" {
			b.WriteString(styles.help.Render(w.Notes))
			b.WriteString("\n")
		}
		for _, e := range w.Exercises {
			line := "  " + e.Name
			if e.HasVolume() {
				line += fmt.Sprintf(" • %dx%d", e.Sets, e.Reps)
			}
			if e.Weight != "" {
				line += " @ " + e.Weight
			}
			if n == s.cursor {
				line = styles.selected.Render("> " + strings.TrimPrefix(line, "  "))
			}
			b.WriteString(line)
			b.WriteString("\n")
			n++
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// calendarScreen is a month grid with the selected day's events underneath.
type calendarScreen struct {
	month    time.Time
	selected time.Time
	events   []models.CalendarEvent
	loading  bool
}

func newCalendarScreen(now time.Time) calendarScreen {
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return calendarScreen{month: firstOfMonth(day), selected: day}
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func (s *calendarScreen) handleKeys(msg tea.KeyMsg, k keyMap) {
	switch {
	case key.Matches(msg, k.left):
		s.selectDay(s.selected.AddDate(0, 0, -1))
	case key.Matches(msg, k.right):
		s.selectDay(s.selected.AddDate(0, 0, 1))
	case key.Matches(msg, k.up):
		s.selectDay(s.selected.AddDate(0, 0, -7))
	case key.Matches(msg, k.down):
		s.selectDay(s.selected.AddDate(0, 0, 7))
	case key.Matches(msg, k.prevMonth):
		s.month = s.month.AddDate(0, -1, 0)
	case key.Matches(msg, k.nextMonth):
		s.month = s.month.AddDate(0, 1, 0)
	}
}

func (s *calendarScreen) selectDay(d time.Time) {
	s.selected = d
	s.month = firstOfMonth(d)
}

func (s *calendarScreen) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render(s.month.Format("January 2006")))
	b.WriteString("\n")
	b.WriteString(styles.dim.Render(" Su  Mo  Tu  We  Th  Fr  Sa"))
	b.WriteString("\n")

	for _, week := range tasks.MonthGrid(s.month) {
		for _, d := range week {
			mark := " "
			if len(repositories.EventsOn(s.events, d)) > 0 {
				mark = "•"
			}
			cell := fmt.Sprintf("%3d%s", d.Day(), mark)
			switch {
			case sameDay(d, s.selected):
				cell = styles.activeTab.UnsetPadding().Render(cell)
			case d.Month() != s.month.Month():
				cell = styles.dim.Render(cell)
			}
			b.WriteString(cell)
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if s.loading {
		b.WriteString(styles.dim.Render("Loading events..."))
		return b.String()
	}

	events := repositories.EventsOn(s.events, s.selected)
	if len(events) == 0 {
		b.WriteString(styles.dim.Render("No events on " + s.selected.Format("Mon, Jan 2")))
		return b.String()
	}
	for _, e := range events {
		b.WriteString(styles.selected.Render(e.Title))
		b.WriteString("\n")
		details := e.Time
		if e.Location != "" {
			details = fmt.Sprintf("%s • %s", details, e.Location)
		}
		b.WriteString(details)
		b.WriteString("\n")
		if e.Description != "" {
			b.WriteString(styles.help.Render(e.Description))
			b.WriteString("\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// touchpointScreen rates each category on a 1-10 scale.
type touchpointScreen struct {
	assessment *tasks.Assessment
	cursor     int
}

func newTouchPointScreen(categories []models.Category) touchpointScreen {
	return touchpointScreen{assessment: tasks.NewAssessment(categories)}
}

func (s *touchpointScreen) handleKeys(msg tea.KeyMsg, m *Model) {
	k := m.keys
	cats := s.assessment.Categories
	switch {
	case key.Matches(msg, k.up):
		if s.cursor > 0 {
			s.cursor--
		}
	case key.Matches(msg, k.down):
		if s.cursor < len(cats)-1 {
			s.cursor++
		}
	case key.Matches(msg, k.rate):
		if s.cursor >= len(cats) {
			return
		}
		rating, err := strconv.Atoi(msg.String())
		if err != nil {
			return
		}
		if rating == 0 {
			rating = models.MaxRating
		}
		if err := s.assessment.Rate(cats[s.cursor].ID, rating); err != nil {
			m.setStatus("", err)
			return
		}
		if s.cursor < len(cats)-1 {
			s.cursor++
		}
	case key.Matches(msg, k.enter):
		pct, err := s.assessment.Submit()
		if err != nil {
			m.setStatus("", err)
			return
		}
		m.setStatus(tasks.SubmitMessage(pct), nil)
	}
}

func (s *touchpointScreen) view() string {
	var b strings.Builder
	b.WriteString(styles.title.Render("TouchPoint Assessment"))
	b.WriteString("\n")
	for i, c := range s.assessment.Categories {
		rating := styles.dim.Render("-")
		if c.Rating > 0 {
			rating = strconv.Itoa(c.Rating)
		}
		line := fmt.Sprintf("  %-16s %s/%d", c.Title, rating, models.MaxRating)
		if i == s.cursor {
			line = styles.selected.Render(fmt.Sprintf("> %-16s", c.Title)) + fmt.Sprintf(" %s/%d", rating, models.MaxRating)
			if c.Description != "" {
				line += "\n    " + styles.help.Render(c.Description)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if s.assessment.AllRated() {
		b.WriteString("\n")
		b.WriteString(styles.dim.Render(fmt.Sprintf("Current score: %d%%", s.assessment.Percentage())))
	}
	return strings.TrimRight(b.String(), "\n")
}
