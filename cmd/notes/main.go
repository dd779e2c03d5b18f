// Package main implements the notes command: a task list kept under a single
// storage key, with an interactive TUI, plain subcommands, an HTTP API and
// import/export.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/JamesPrial/todo-notes/internal/app"
	"github.com/JamesPrial/todo-notes/internal/config"
)

// cli holds the state shared by all subcommands of one invocation.
type cli struct {
	cfgFile string
	verbose bool

	v      *viper.Viper
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	app *app.App
}

// open loads the configuration and the store once per invocation.
func (c *cli) open() (*app.App, error) {
	if c.app != nil {
		return c.app, nil
	}

	cfg, err := config.Load(c.v, c.cfgFile)
	if err != nil {
		return nil, err
	}
	if c.verbose {
		cfg.LogLevel = "debug"
	}

	a, err := app.Open(cfg, app.NewLogger(c.stderr, cfg.LogLevel))
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func newRootCmd(c *cli) *cobra.Command {
	root := &cobra.Command{
		Use:   "notes",
		Short: "A small task list for the terminal.",
		Long: `notes keeps a list of tasks under a single storage key.

Run without a subcommand to open the interactive list, or use the
subcommands to add, toggle, edit and remove tasks from scripts.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if isTerminal(c.stdin) && isTerminal(c.stdout) {
				return runTUI(c)
			}
			return runList(c, listOptions{})
		},
	}

	root.SetIn(c.stdin)
	root.SetOut(c.stdout)
	root.SetErr(c.stderr)

	pf := root.PersistentFlags()
	pf.StringVarP(&c.cfgFile, "config", "c", "", "config file (default is ./.notes.yaml or $HOME/.notes.yaml)")
	pf.BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	pf.String("backend", "", "storage backend: json, sqlite, postgres or mysql")
	pf.String("data-dir", "", "directory for file-based backends")
	pf.String("locale", "", "language of messages: en or ru")

	_ = c.v.BindPFlag("backend", pf.Lookup("backend"))
	_ = c.v.BindPFlag("data_dir", pf.Lookup("data-dir"))
	_ = c.v.BindPFlag("locale", pf.Lookup("locale"))

	root.AddCommand(
		newAddCmd(c),
		newListCmd(c),
		newToggleCmd(c),
		newEditCmd(c),
		newRmCmd(c),
		newExportCmd(c),
		newImportCmd(c),
		newTUICmd(c),
		newServeCmd(c),
	)
	return root
}

// run executes the command line and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := &cli{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	root := newRootCmd(c)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(stderr, "notes: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
