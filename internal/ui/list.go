package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/desertthunder/better/internal/models"
)

var (
	_ list.Item = courseItem{}
	_ list.Item = mealPlanItem{}
	_ list.Item = linkItem{}
)

// courseItem wraps [models.Course] to implement [list.Item].
type courseItem struct {
	course models.Course
}

func (i courseItem) FilterValue() string { return i.course.Title }
func (i courseItem) Title() string       { return fmt.Sprintf("%s %s", i.course.ID, i.course.Title) }
func (i courseItem) Description() string {
	if i.course.Summary != "" {
		return i.course.Summary
	}
	return i.course.Link()
}

// mealPlanItem wraps [models.MealPlan] to implement [list.Item].
type mealPlanItem struct {
	plan models.MealPlan
}

func (i mealPlanItem) FilterValue() string { return i.plan.Title }
func (i mealPlanItem) Title() string       { return i.plan.Title }
func (i mealPlanItem) Description() string {
	if i.plan.Size > 0 {
		return fmt.Sprintf("%s • %d KB", i.plan.Filename, i.plan.Size/1024)
	}
	return i.plan.Filename
}

// linkItem is any titled URL from the static catalog.
type linkItem struct {
	title string
	desc  string
	url   string
}

func (i linkItem) FilterValue() string { return i.title }
func (i linkItem) Title() string       { return i.title }
func (i linkItem) Description() string {
	if i.desc != "" {
		return i.desc
	}
	return i.url
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, list.NewDefaultDelegate(), 80, 20)
	l.Title = title
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return l
}

func courseItems(courses []models.Course) []list.Item {
	items := make([]list.Item, len(courses))
	for i, c := range courses {
		items[i] = courseItem{course: c}
	}
	return items
}

func mealPlanItems(plans []models.MealPlan) []list.Item {
	items := make([]list.Item, len(plans))
	for i, p := range plans {
		items[i] = mealPlanItem{plan: p}
	}
	return items
}

func checkInItems(forms []models.CheckInForm) []list.Item {
	items := make([]list.Item, len(forms))
	for i, f := range forms {
		items[i] = linkItem{title: f.Name, desc: f.Description, url: f.URL}
	}
	return items
}

func podcastItems(podcasts []models.Podcast) []list.Item {
	items := make([]list.Item, len(podcasts))
	for i, p := range podcasts {
		items[i] = linkItem{title: p.Title, desc: p.Description, url: p.URL}
	}
	return items
}

func externalLinkItems(links []models.ExternalLink) []list.Item {
	items := make([]list.Item, len(links))
	for i, l := range links {
		items[i] = linkItem{title: l.Name, url: l.URL}
	}
	return items
}
