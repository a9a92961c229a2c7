// submodule cmd contains command definitions
package main

import (
	"runtime"

	"github.com/urfave/cli/v3"
)

func jsonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print JSON output",
			Value: true,
		},
	}
}

func exportFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format (txt, md, csv)",
			Value:   "txt",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write to a file instead of stdout",
		},
	}
}

// setupCommand handles setup operations for the config file and database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:  "database",
				Usage: "Initialize database and run migrations",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Roll back the most recent migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// coursesCommand lists and opens lessons
func coursesCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "courses",
		Usage: "Course lessons",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List lessons (remote, falling back to the bundled list)",
				Flags:  jsonFlags(),
				Action: r.CoursesList,
			},
			{
				Name:  "open",
				Usage: "Open a lesson by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.CoursesOpen,
			},
		},
	}
}

// nutritionCommand lists, downloads and opens meal plan PDFs
func nutritionCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "nutrition",
		Aliases: []string{"meals"},
		Usage:   "Meal plan PDFs",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List meal plans",
				Flags:  jsonFlags(),
				Action: r.NutritionList,
			},
			{
				Name:  "open",
				Usage: "Download (if needed) and open a meal plan by title or filename",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "plan"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "download-only",
						Usage: "Save the PDF without opening it",
					},
				},
				Action: r.NutritionOpen,
			},
			{
				Name:   "downloads",
				Usage:  "List downloaded meal plans",
				Flags:  jsonFlags(),
				Action: r.NutritionDownloads,
			},
			{
				Name:  "forget",
				Usage: "Delete a downloaded meal plan",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "filename"},
				},
				Action: r.NutritionForget,
			},
		},
	}
}

// truecoachCommand handles the partner app and API
func truecoachCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "truecoach",
		Aliases: []string{"tc"},
		Usage:   "TrueCoach app and API",
		Commands: []*cli.Command{
			{
				Name:   "open",
				Usage:  "Open the TrueCoach app, its store listing, or a store search",
				Action: r.TrueCoachOpen,
			},
			{
				Name:  "token",
				Usage: "Manage the TrueCoach API token",
				Commands: []*cli.Command{
					{
						Name:  "set",
						Usage: "Save an API token",
						Arguments: []cli.Argument{
							&cli.StringArg{Name: "token"},
						},
						Action: r.TokenSet,
					},
					{
						Name:  "show",
						Usage: "Show the saved API token",
						Flags: []cli.Flag{
							&cli.BoolFlag{
								Name:  "reveal",
								Usage: "Print the full token",
							},
						},
						Action: r.TokenShow,
					},
					{
						Name:   "clear",
						Usage:  "Remove the saved API token",
						Action: r.TokenClear,
					},
				},
			},
			{
				Name:  "workouts",
				Usage: "Fetch scheduled workouts (defaults to the current week)",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "start",
						Usage: "First day (YYYY-MM-DD)",
					},
					&cli.StringFlag{
						Name:  "end",
						Usage: "Last day (YYYY-MM-DD)",
					},
				}, jsonFlags()...),
				Action: r.TrueCoachWorkouts,
			},
			{
				Name:  "notes",
				Usage: "Update a workout's notes on TrueCoach",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "workout-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "notes",
						Aliases:  []string{"n"},
						Usage:    "Notes text",
						Required: true,
					},
				},
				Action: r.TrueCoachNotes,
			},
		},
	}
}

// trainingCommand shows and edits the weekly plan
func trainingCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "training",
		Usage: "Weekly training plan",
		Commands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show this week's plan",
				Flags:  append(exportFlags(), jsonFlags()...),
				Action: r.TrainingShow,
			},
			{
				Name:  "move",
				Usage: "Move a workout to another day of this week",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "workout-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "to",
						Usage:    "Target day (weekday name or YYYY-MM-DD)",
						Required: true,
					},
				},
				Action: r.TrainingMove,
			},
			{
				Name:  "note",
				Usage: "Edit workout or exercise notes",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "workout-id"},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "notes",
						Aliases:  []string{"n"},
						Usage:    "Notes text",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "exercise",
						Usage: "Exercise index (0-based); omit to edit the workout notes",
						Value: -1,
					},
				},
				Action: r.TrainingNote,
			},
		},
	}
}

// calendarCommand manages member calendar events
func calendarCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "calendar",
		Aliases: []string{"cal"},
		Usage:   "Calendar events",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List events",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:  "day",
						Usage: "Only events on this day (YYYY-MM-DD)",
					},
				}, append(exportFlags(), jsonFlags()...)...),
				Action: r.CalendarList,
			},
			{
				Name:  "month",
				Usage: "Print a month grid marking days with events",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "month",
						Usage: "Month to show (YYYY-MM)",
					},
				},
				Action: r.CalendarMonth,
			},
			{
				Name:   "seed",
				Usage:  "Add the promotional event if missing",
				Action: r.CalendarSeed,
			},
			{
				Name:  "add",
				Usage: "Add an event",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "title", Usage: "Event title", Required: true},
					&cli.StringFlag{Name: "date", Usage: "Event date (YYYY-MM-DD)", Required: true},
					&cli.StringFlag{Name: "time", Usage: "Display time, e.g. 9:15 AM"},
					&cli.StringFlag{Name: "description", Usage: "Event description"},
					&cli.StringFlag{Name: "location", Usage: "Event location"},
				},
				Action: r.CalendarAdd,
			},
			{
				Name:  "remove",
				Usage: "Remove an event by id",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.CalendarRemove,
			},
		},
	}
}

// touchpointCommand scores a TouchPoint assessment
func touchpointCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "touchpoint",
		Usage: "Rate each category (1-10) and get an overall score",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "rate",
				Aliases: []string{"r"},
				Usage:   "category=rating, repeatable",
			},
		},
		Action: r.TouchPoint,
	}
}

// checkInCommand lists and opens the weekly check-in forms
func checkInCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "checkin",
		Usage: "Weekly check-in forms",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List check-in forms",
				Flags:  jsonFlags(),
				Action: r.CheckInList,
			},
			{
				Name:  "open",
				Usage: "Open a check-in form (defaults to the first)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.CheckInOpen,
			},
		},
	}
}

// podcastsCommand lists and opens podcasts
func podcastsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "podcasts",
		Usage: "Podcast playlists",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List podcasts",
				Flags:  jsonFlags(),
				Action: r.PodcastsList,
			},
			{
				Name:  "open",
				Usage: "Open a podcast by title (defaults to the first)",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "title"},
				},
				Action: r.PodcastsOpen,
			},
		},
	}
}

// linksCommand lists and opens external platforms
func linksCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "links",
		Usage: "External platforms",
		Commands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List external links",
				Flags:  jsonFlags(),
				Action: r.LinksList,
			},
			{
				Name:  "open",
				Usage: "Open an external link by name",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.LinksOpen,
			},
		},
	}
}

// reportCommand sends an issue report to support
func reportCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Report an issue to support",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Your name", Required: true},
			&cli.StringFlag{Name: "description", Aliases: []string{"d"}, Usage: "What went wrong", Required: true},
			&cli.StringFlag{Name: "platform", Usage: "Platform", Value: runtime.GOOS},
			&cli.StringFlag{Name: "device", Usage: "Device description"},
			&cli.StringFlag{Name: "screenshot", Usage: "Path to a screenshot to attach"},
		},
		Action: r.Report,
	}
}

// manifestCommand patches native manifests for partner app discovery
func manifestCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "manifest",
		Usage: "Native manifest augmentation",
		Commands: []*cli.Command{
			{
				Name:  "patch",
				Usage: "Declare the partner scheme and packages in Info.plist and/or AndroidManifest.xml",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "ios", Usage: "Path to Info.plist"},
					&cli.StringFlag{Name: "android", Usage: "Path to AndroidManifest.xml"},
					&cli.StringFlag{Name: "scheme", Usage: "URL scheme to declare (defaults to linking.scheme)"},
					&cli.StringSliceFlag{Name: "package", Usage: "Android package to declare, repeatable (defaults to linking.android_packages)"},
				},
				Action: r.ManifestPatch,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive terminal companion",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "tab",
				Usage: "Screen to open first",
				Value: "home",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "Where to write logs while the TUI owns the terminal",
				Value: "./tmp/better-tui.log",
			},
		},
		Action: r.TUI,
	}
}
