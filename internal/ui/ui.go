package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/better/internal/catalog"
	"github.com/desertthunder/better/internal/models"
	"github.com/desertthunder/better/internal/repositories"
	"github.com/desertthunder/better/internal/shared"
	"github.com/desertthunder/better/internal/tasks"
)

// Tab identifies a screen in the TUI.
type Tab int

const (
	HomeTab Tab = iota
	TrueCoachTab
	CoursesTab
	CheckInTab
	NutritionTab
	TrainingTab
	CalendarTab
	TouchPointTab
	PodcastsTab
	LinksTab
	tabCount
)

var tabNames = [tabCount]string{
	"Home", "TrueCoach", "Courses", "Check In", "Nutrition",
	"Training", "Calendar", "TouchPoint", "Podcasts", "Links",
}

func (t Tab) String() string {
	if t < 0 || t >= tabCount {
		return ""
	}
	return tabNames[t]
}

// ParseTab resolves a tab by name, ignoring case and spaces.
func ParseTab(name string) (Tab, bool) {
	want := strings.ReplaceAll(name, " ", "")
	for t := HomeTab; t < tabCount; t++ {
		if strings.EqualFold(strings.ReplaceAll(tabNames[t], " ", ""), want) {
			return t, true
		}
	}
	return HomeTab, false
}

// Deps carries the services the screens call into.
type Deps struct {
	Catalog   *catalog.Catalog
	Courses   *tasks.Loader[models.Course]
	MealPlans *tasks.Loader[models.MealPlan]
	Documents *tasks.DocumentCache
	Plans     *tasks.PlanService
	Calendar  *repositories.CalendarRepository
	Resolver  *tasks.Resolver
	Opener    tasks.URLOpener
	Logger    *log.Logger
	Now       func() time.Time
}

// Model represents the TUI application state.
type Model struct {
	ctx    context.Context
	deps   Deps
	active Tab
	seq    [tabCount]int
	width  int
	height int

	courses    listScreen
	nutrition  listScreen
	checkIn    listScreen
	podcasts   listScreen
	links      listScreen
	truecoach  truecoachScreen
	training   trainingScreen
	calendar   calendarScreen
	touchpoint touchpointScreen

	status    string
	statusErr bool
	help      help.Model
	keys      keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, deps Deps) *Model {
	if deps.Catalog == nil {
		deps.Catalog = catalog.MustLoad()
	}
	if deps.Logger == nil {
		deps.Logger = shared.DiscardLogger()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	now := deps.Now()
	return &Model{
		ctx:        ctx,
		deps:       deps,
		active:     HomeTab,
		courses:    listScreen{list: newList("Courses", nil)},
		nutrition:  listScreen{list: newList("Nutrition", nil)},
		checkIn:    listScreen{list: newList("Weekly Check In", checkInItems(deps.Catalog.CheckInForms))},
		podcasts:   listScreen{list: newList("Podcasts", podcastItems(deps.Catalog.Podcasts))},
		links:      listScreen{list: newList("External Links", externalLinkItems(deps.Catalog.Links))},
		training:   newTrainingScreen(now),
		calendar:   newCalendarScreen(now),
		touchpoint: newTouchPointScreen(deps.Catalog.Categories()),
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// WithTab selects the screen shown first.
func (m *Model) WithTab(t Tab) *Model {
	if t >= 0 && t < tabCount {
		m.active = t
	}
	return m
}

// Active reports the selected screen.
func (m *Model) Active() Tab { return m.active }

// Init mounts the first screen.
func (m *Model) Init() tea.Cmd {
	return m.mount(m.active)
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, s := range m.listScreens() {
			s.list.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.nextTab):
			return m, m.switchTab((m.active + 1) % tabCount)
		case key.Matches(msg, m.keys.prevTab):
			return m, m.switchTab((m.active + tabCount - 1) % tabCount)
		}
		return m.handleTabKeys(msg)

	case Msg:
		return m.handleMsg(msg)
	}

	return m.updateLists(msg)
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	if msg.kind != MsgActionDone && msg.seq != m.seq[msg.tab] {
		m.deps.Logger.Debug("dropping stale result", "tab", msg.tab, "seq", msg.seq, "current", m.seq[msg.tab])
		return m, nil
	}

	switch msg.kind {
	case MsgCoursesLoaded:
		res := msg.data.(tasks.Result[models.Course])
		m.courses.loading = false
		m.courses.banner = res.Banner
		return m, m.courses.list.SetItems(courseItems(res.Items))

	case MsgMealPlansLoaded:
		res := msg.data.(tasks.Result[models.MealPlan])
		m.nutrition.loading = false
		m.nutrition.banner = res.Banner
		return m, m.nutrition.list.SetItems(mealPlanItems(res.Items))

	case MsgPlanLoaded:
		m.training.loading = false
		m.training.plan = msg.data.(*tasks.Plan)
		m.training.cursor = 0
		return m, nil

	case MsgEventsLoaded:
		m.calendar.loading = false
		m.calendar.events = msg.data.([]models.CalendarEvent)
		return m, nil

	case MsgProgress:
		m.truecoach.progress = msg.data.(tasks.ProgressUpdate)
		return m, m.truecoach.wait(msg.seq)

	case MsgResolved:
		r := msg.data.(resolvedResult)
		m.truecoach.opening = false
		m.truecoach.updates = nil
		if r.err != nil {
			m.setStatus("", fmt.Errorf("unable to open TrueCoach: %w", r.err))
			return m, nil
		}
		m.truecoach.last = &r.resolution
		m.setStatus(fmt.Sprintf("Opened %s (%s)", r.resolution.URL, r.resolution.Step), nil)
		return m, nil

	case MsgActionDone:
		r := msg.data.(actionResult)
		m.setStatus(r.ok, r.err)
		return m, nil
	}
	return m, nil
}

// View renders the tab bar, the active screen, the status line and contextual help.
func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	switch m.active {
	case HomeTab:
		b.WriteString(m.renderHome())
	case TrueCoachTab:
		b.WriteString(m.truecoach.view())
	case CoursesTab:
		b.WriteString(m.courses.view())
	case CheckInTab:
		b.WriteString(m.checkIn.view())
	case NutritionTab:
		b.WriteString(m.nutrition.view())
	case TrainingTab:
		b.WriteString(m.training.view())
	case CalendarTab:
		b.WriteString(m.calendar.view())
	case TouchPointTab:
		b.WriteString(m.touchpoint.view())
	case PodcastsTab:
		b.WriteString(m.podcasts.view())
	case LinksTab:
		b.WriteString(m.links.view())
	}

	if m.status != "" {
		b.WriteString("\n\n")
		if m.statusErr {
			b.WriteString(styles.error.Render(m.status))
		} else {
			b.WriteString(styles.success.Render(m.status))
		}
	}

	b.WriteString("\n\n")
	b.WriteString(m.help.ShortHelpView(m.tabKeys()))
	return b.String()
}

// switchTab unmounts the active screen and mounts t.
func (m *Model) switchTab(t Tab) tea.Cmd {
	if t == m.active {
		return nil
	}
	m.unmount(m.active)
	m.active = t
	m.status = ""
	m.statusErr = false
	return m.mount(t)
}

// mount starts a new request generation for t and returns its load command.
func (m *Model) mount(t Tab) tea.Cmd {
	m.seq[t]++
	seq := m.seq[t]

	switch t {
	case CoursesTab:
		m.courses.loading = true
		return m.loadCourses(seq, false)
	case NutritionTab:
		m.nutrition.loading = true
		return m.loadMealPlans(seq, false)
	case TrainingTab:
		m.training.loading = true
		return m.loadPlan(seq)
	case CalendarTab:
		m.calendar.loading = true
		return m.loadEvents(seq)
	}
	return nil
}

// unmount invalidates in-flight results for t.
func (m *Model) unmount(t Tab) {
	m.seq[t]++
	switch t {
	case CoursesTab:
		m.courses.loading = false
	case NutritionTab:
		m.nutrition.loading = false
	case TrainingTab:
		m.training.loading = false
	case CalendarTab:
		m.calendar.loading = false
	case TrueCoachTab:
		m.truecoach.opening = false
		m.truecoach.updates = nil
	}
}

func (m *Model) reload(t Tab) tea.Cmd {
	m.seq[t]++
	seq := m.seq[t]

	switch t {
	case CoursesTab:
		m.courses.loading = true
		return m.loadCourses(seq, true)
	case NutritionTab:
		m.nutrition.loading = true
		return m.loadMealPlans(seq, true)
	case TrainingTab:
		m.training.loading = true
		return m.loadPlan(seq)
	case CalendarTab:
		m.calendar.loading = true
		return m.loadEvents(seq)
	case TouchPointTab:
		m.touchpoint = newTouchPointScreen(m.deps.Catalog.Categories())
	}
	return nil
}

func (m *Model) handleTabKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.reload) {
		return m, m.reload(m.active)
	}

	switch m.active {
	case TrueCoachTab:
		if key.Matches(msg, m.keys.enter) && !m.truecoach.opening {
			return m, m.openTrueCoach()
		}
		return m, nil
	case CoursesTab:
		if key.Matches(msg, m.keys.enter) {
			if item, ok := m.courses.list.SelectedItem().(courseItem); ok {
				return m, m.openURL(CoursesTab, item.course.Title, item.course.Link())
			}
		}
	case NutritionTab:
		if key.Matches(msg, m.keys.enter) {
			if item, ok := m.nutrition.list.SelectedItem().(mealPlanItem); ok {
				return m, m.openDocument(item.plan)
			}
		}
	case CheckInTab, PodcastsTab, LinksTab:
		if key.Matches(msg, m.keys.enter) {
			if item, ok := m.activeList().list.SelectedItem().(linkItem); ok {
				return m, m.openURL(m.active, item.title, item.url)
			}
		}
	case TrainingTab:
		return m, m.training.handleKeys(msg, m)
	case CalendarTab:
		m.calendar.handleKeys(msg, m.keys)
		return m, nil
	case TouchPointTab:
		m.touchpoint.handleKeys(msg, m)
		return m, nil
	}

	return m.updateLists(msg)
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	s := m.activeList()
	if s == nil {
		return m, nil
	}
	var cmd tea.Cmd
	s.list, cmd = s.list.Update(msg)
	return m, cmd
}

func (m *Model) activeList() *listScreen {
	switch m.active {
	case CoursesTab:
		return &m.courses
	case NutritionTab:
		return &m.nutrition
	case CheckInTab:
		return &m.checkIn
	case PodcastsTab:
		return &m.podcasts
	case LinksTab:
		return &m.links
	}
	return nil
}

func (m *Model) listScreens() []*listScreen {
	return []*listScreen{&m.courses, &m.nutrition, &m.checkIn, &m.podcasts, &m.links}
}

func (m *Model) setStatus(ok string, err error) {
	if err != nil {
		m.status = err.Error()
		m.statusErr = true
		return
	}
	m.status = ok
	m.statusErr = false
}

func (m *Model) loadCourses(seq int, refresh bool) tea.Cmd {
	loader := m.deps.Courses
	return func() tea.Msg {
		if refresh {
			return coursesLoadedMsg(seq, loader.Refresh(m.ctx))
		}
		return coursesLoadedMsg(seq, loader.Load(m.ctx))
	}
}

func (m *Model) loadMealPlans(seq int, refresh bool) tea.Cmd {
	loader := m.deps.MealPlans
	return func() tea.Msg {
		if refresh {
			return mealPlansLoadedMsg(seq, loader.Refresh(m.ctx))
		}
		return mealPlansLoadedMsg(seq, loader.Load(m.ctx))
	}
}

func (m *Model) loadPlan(seq int) tea.Cmd {
	plans := m.deps.Plans
	return func() tea.Msg {
		return planLoadedMsg(seq, plans.Load(m.ctx))
	}
}

// loadEvents seeds the promotional event before reading the calendar.
func (m *Model) loadEvents(seq int) tea.Cmd {
	repo := m.deps.Calendar
	logger := m.deps.Logger
	return func() tea.Msg {
		if _, err := repo.SeedPromotional(m.ctx); err != nil {
			logger.Warn("failed to seed promotional event", "error", err)
		}
		return eventsLoadedMsg(seq, repo.Load(m.ctx))
	}
}

func (m *Model) openURL(t Tab, label, url string) tea.Cmd {
	opener := m.deps.Opener
	return func() tea.Msg {
		if url == "" {
			return actionDoneMsg(t, "", fmt.Errorf("%w: %s has no link", shared.ErrNotFound, label))
		}
		if err := opener.Open(m.ctx, url); err != nil {
			return actionDoneMsg(t, "", fmt.Errorf("could not open %s: %w", label, err))
		}
		return actionDoneMsg(t, "Opened "+label, nil)
	}
}

func (m *Model) openDocument(plan models.MealPlan) tea.Cmd {
	docs := m.deps.Documents
	return func() tea.Msg {
		path, err := docs.Open(m.ctx, plan)
		if err != nil {
			return actionDoneMsg(NutritionTab, "", err)
		}
		return actionDoneMsg(NutritionTab, "Opened "+path, nil)
	}
}

// openTrueCoach runs the resolver chain in the background and streams its progress.
func (m *Model) openTrueCoach() tea.Cmd {
	seq := m.seq[TrueCoachTab]
	updates := make(chan tasks.ProgressUpdate, 16)
	done := make(chan Msg, 1)

	resolver := m.deps.Resolver.WithProgress(updates)
	m.truecoach.opening = true
	m.truecoach.progress = tasks.ProgressUpdate{}
	m.truecoach.updates = updates
	m.truecoach.done = done

	go func() {
		res, err := resolver.Open(m.ctx)
		close(updates)
		done <- resolvedMsg(seq, res, err)
	}()

	return m.truecoach.wait(seq)
}

func (m *Model) renderTabs() string {
	tabs := make([]string, 0, tabCount)
	for t := HomeTab; t < tabCount; t++ {
		if t == m.active {
			tabs = append(tabs, styles.activeTab.Render(t.String()))
		} else {
			tabs = append(tabs, styles.tab.Render(t.String()))
		}
	}
	return strings.Join(tabs, "")
}

func (m *Model) renderHome() string {
	title := styles.title.Render("Be A Better Man")
	return fmt.Sprintf("%s\n%s", title, m.deps.Catalog.Home)
}

// tabKeys returns the help bindings relevant to the active screen.
func (m *Model) tabKeys() []key.Binding {
	k := m.keys
	switch m.active {
	case TrueCoachTab:
		return []key.Binding{k.enter, k.nextTab, k.quit}
	case CoursesTab, NutritionTab:
		return []key.Binding{k.up, k.down, k.enter, k.reload, k.nextTab, k.quit}
	case CheckInTab, PodcastsTab, LinksTab:
		return []key.Binding{k.up, k.down, k.enter, k.nextTab, k.quit}
	case TrainingTab:
		return []key.Binding{k.left, k.right, k.up, k.down, k.enter, k.reload, k.quit}
	case CalendarTab:
		return []key.Binding{k.left, k.right, k.prevMonth, k.nextMonth, k.reload, k.quit}
	case TouchPointTab:
		submit := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit"))
		return []key.Binding{k.up, k.down, k.rate, submit, k.reload, k.quit}
	}
	return []key.Binding{k.nextTab, k.prevTab, k.quit}
}
