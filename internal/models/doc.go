// Package models defines the value records shown by the Better companion.
//
// The package contains two categories of types:
//
// 1. Remote content: records fetched from the content repository, with bundled fallbacks
//   - [Course] : a lesson in the launch-pad course list, ordered by dotted id
//   - [MealPlan] : a nutrition PDF whose title derives from its filename
//
// 2. Local state: records held in memory or in the key/value store
//   - [CalendarEvent] : persisted as a JSON array with ISO dates
//   - [Workout] / [Exercise] : the weekly training plan, grouped by weekday in a [WeekPlan]
//   - [Category] / [Assessment] : TouchPoint ratings on a 0-10 scale
//
// Static records ([CheckInForm], [Podcast], [ExternalLink]) come from the embedded catalog.
package models
