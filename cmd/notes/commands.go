package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JamesPrial/todo-notes/internal/export"
	"github.com/JamesPrial/todo-notes/internal/importer"
	"github.com/JamesPrial/todo-notes/internal/store"
	"github.com/JamesPrial/todo-notes/internal/task"
	"github.com/JamesPrial/todo-notes/internal/tui"
	"github.com/JamesPrial/todo-notes/internal/view"
	"github.com/JamesPrial/todo-notes/internal/web"
)

func newAddCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "add <text...>",
		Short: "Add a task to the top of the list",
		Long:  "Add a task. The words are joined with spaces and trimmed; blank text adds nothing.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			t, ok, err := a.Store.Add(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if ok {
				fmt.Fprintf(c.stdout, "Added %s: %s\n", t.ID, t.Text)
			}
			return nil
		},
	}
}

type listOptions struct {
	filter string
	search string
	json   bool
}

func newListCmd(c *cli) *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tasks, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(c, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.filter, "filter", "f", "all", "show all, active or completed tasks")
	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "only show tasks containing this text")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the tasks as a JSON array")
	return cmd
}

func runList(c *cli, opts listOptions) error {
	filter, err := task.ParseFilter(opts.filter)
	if err != nil {
		return err
	}

	a, err := c.open()
	if err != nil {
		return err
	}

	proj := view.Project(a.Store.Tasks(), view.State{Filter: filter, Search: opts.search})
	if opts.json {
		return export.Write(c.stdout, proj.Tasks, export.FormatJSON)
	}
	if proj.Empty != view.NotEmpty {
		fmt.Fprintln(c.stdout, proj.Empty.Message(a.Locale))
		return nil
	}
	for _, t := range proj.Tasks {
		check := "[ ]"
		if t.Completed {
			check = "[x]"
		}
		fmt.Fprintf(c.stdout, "%s  %s %s\n", t.ID, check, t.Text)
	}
	return nil
}

func newToggleCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Flip a task between active and completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			t, ok, err := a.Store.Toggle(args[0])
			if err != nil {
				return err
			}
			if ok {
				state := "active"
				if t.Completed {
					state = "completed"
				}
				fmt.Fprintf(c.stdout, "%s is now %s\n", t.ID, state)
			}
			return nil
		},
	}
}

func newEditCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "edit <id> <text...>",
		Short: "Replace the text of a task",
		Long:  "Replace the text of a task. Blank text leaves the task unchanged.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			outcome, err := a.Store.Edit(args[0], strings.Join(args[1:], " "))
			if err != nil {
				return err
			}
			if outcome == store.EditCommitted {
				t, _ := a.Store.Get(args[0])
				fmt.Fprintf(c.stdout, "Updated %s: %s\n", t.ID, t.Text)
			}
			return nil
		},
	}
}

func newRmCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}
			removed, err := a.Store.Remove(args[0])
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(c.stdout, "Deleted %s\n", args[0])
			}
			return nil
		},
	}
}

func newExportCmd(c *cli) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task to stdout as JSON or YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := export.ParseFormat(format)
			if err != nil {
				return err
			}
			a, err := c.open()
			if err != nil {
				return err
			}
			return export.Write(c.stdout, a.Store.Tasks(), f)
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "output format: json or yaml")
	return cmd
}

func newImportCmd(c *cli) *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Add tasks from a JSON array read on stdin",
		Long: `Read a JSON array of tasks on stdin, such as the value of a browser's
localStorage "todo" entry, and append them to the list.

Records without text are skipped. Missing ids and timestamps are filled in.
With --replace the current list is discarded first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			records, err := importer.Decode(c.stdin)
			if err != nil {
				return err
			}
			a, err := c.open()
			if err != nil {
				return err
			}
			n, err := a.Store.Import(records, replace)
			if err != nil {
				return err
			}
			fmt.Fprintf(c.stdout, "Imported %d task(s)\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "discard the current list before importing")
	return cmd
}

func newTUICmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive task list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTUI(c)
		},
	}
}

func runTUI(c *cli) error {
	a, err := c.open()
	if err != nil {
		return err
	}
	return tui.Run(a.Store,
		[]tui.Option{tui.WithLocale(a.Locale)},
		tea.WithAltScreen(),
		tea.WithInput(c.stdin),
		tea.WithOutput(c.stdout),
	)
}

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task list as a JSON API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := c.open()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			gin.SetMode(gin.ReleaseMode)
			srv := web.NewServer(a.Store, a.Locale, a.Logger.With("component", "web"))
			fmt.Fprintf(c.stderr, "Serving on http://%s\n", a.Config.Addr)
			if err := srv.ListenAndServe(ctx, a.Config.Addr); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
	cmd.Flags().String("addr", "", "listen address (default 127.0.0.1:8080)")
	_ = c.v.BindPFlag("addr", cmd.Flags().Lookup("addr"))
	return cmd
}

// isTerminal reports whether f is an *os.File attached to a terminal.
func isTerminal(f any) bool {
	file, ok := f.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
