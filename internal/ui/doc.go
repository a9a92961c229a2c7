// Package ui implements the interactive terminal companion using bubbletea's Elm architecture.
//
// The TUI presents one tab per screen:
//  1. Home : welcome text
//  2. TrueCoach : open the partner app through the [tasks.Resolver] fallback chain
//  3. Courses / Nutrition : remote lists with a bundled fallback and a banner
//  4. Check In / Podcasts / Links : static catalog entries opened in the browser
//  5. Training : the weekly plan, by day
//  6. Calendar : a month grid with the events of the selected day
//  7. TouchPoint : rate each category and submit for an overall score
//
// Every screen owns a view-state struct. Asynchronous loads are tagged with the tab's request
// sequence; a result whose sequence no longer matches (tab left or reloaded) is dropped.
//
// Keyboard navigation uses tab/shift+tab between screens, vim-style movement (j/k, h/l), enter
// to open, r to reload and q to quit, with contextual help via charmbracelet/bubbles/help.
package ui
