package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/tasks"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
//
// Load results carry the tab and request sequence they were issued for.
type Msg struct {
	kind MsgKind
	tab  Tab
	seq  int
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgCoursesLoaded MsgKind = iota
	MsgMealPlansLoaded
	MsgPlanLoaded
	MsgEventsLoaded
	MsgActionDone
	MsgProgress
	MsgResolved
)

// coursesLoadedMsg is the constructor for [MsgCoursesLoaded]
func coursesLoadedMsg(seq int, res tasks.Result[models.Course]) Msg {
	return Msg{kind: MsgCoursesLoaded, tab: CoursesTab, seq: seq, data: res}
}

// mealPlansLoadedMsg is the constructor for [MsgMealPlansLoaded]
func mealPlansLoadedMsg(seq int, res tasks.Result[models.MealPlan]) Msg {
	return Msg{kind: MsgMealPlansLoaded, tab: NutritionTab, seq: seq, data: res}
}

// planLoadedMsg is the constructor for [MsgPlanLoaded]
func planLoadedMsg(seq int, plan *tasks.Plan) Msg {
	return Msg{kind: MsgPlanLoaded, tab: TrainingTab, seq: seq, data: plan}
}

// eventsLoadedMsg is the constructor for [MsgEventsLoaded]
func eventsLoadedMsg(seq int, events []models.CalendarEvent) Msg {
	return Msg{kind: MsgEventsLoaded, tab: CalendarTab, seq: seq, data: events}
}

// actionResult is the outcome of a one-shot side effect such as opening a URL.
type actionResult struct {
	ok  string
	err error
}

// actionDoneMsg is the constructor for [MsgActionDone]
func actionDoneMsg(tab Tab, ok string, err error) Msg {
	return Msg{kind: MsgActionDone, tab: tab, data: actionResult{ok: ok, err: err}}
}

// progressMsg wraps a [tasks.ProgressUpdate] from a running chain.
func progressMsg(tab Tab, seq int, u tasks.ProgressUpdate) Msg {
	return Msg{kind: MsgProgress, tab: tab, seq: seq, data: u}
}

type resolvedResult struct {
	resolution tasks.Resolution
	err        error
}

// resolvedMsg is the constructor for [MsgResolved]
func resolvedMsg(seq int, res tasks.Resolution, err error) Msg {
	return Msg{kind: MsgResolved, tab: TrueCoachTab, seq: seq, data: resolvedResult{resolution: res, err: err}}
}
