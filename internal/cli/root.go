// Package cli implements the giftgrid command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giftgrid/internal/paths"
	"github.com/mesh-intelligence/giftgrid/internal/planner"
	"github.com/mesh-intelligence/giftgrid/internal/sqlite"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds the global flag values and the configuration loaded for one
// invocation.
type app struct {
	configDir string
	dataDir   string
	output    string
	verbose   bool

	cfg types.Config
}

// NewRootCmd creates the top-level "giftgrid" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "giftgrid",
		Short: "Plan collectible gift layouts on a 3-column grid",
		Long: "giftgrid browses the gift catalog and edits a grid of gift, model,\n" +
			"backdrop and pattern combinations. Catalog responses are cached per session.",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: platform data dir)")
	root.PersistentFlags().StringVarP(&a.output, "output", "o", outputText, "output format: text, json or yaml")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "log catalog requests to stderr")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newSessionCmd(a))
	root.AddCommand(newGiftsCmd(a))
	root.AddCommand(newBackdropsCmd(a))
	root.AddCommand(newModelsCmd(a))
	root.AddCommand(newPatternsCmd(a))
	root.AddCommand(newGridCmd(a))
	root.AddCommand(newCellCmd(a))
	root.AddCommand(newLinkCmd(a))
	root.AddCommand(newRingsCmd(a))

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	root := NewRootCmd()
	err := root.Execute()
	if err != nil {
		fmt.Fprintln(root.ErrOrStderr(), "Error:", err)
	}
	return exitCode(err)
}

// setup loads .env and config.yaml before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	if err := checkOutput(a.output); err != nil {
		return err
	}
	if cmd.Name() == "version" {
		return nil
	}
	if err := loadDotEnv(); err != nil {
		return sysError(err)
	}

	configDir, err := paths.ResolveConfigDir(a.configDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve config dir: %w", err))
	}
	v, err := loadConfig(configDir)
	if err != nil {
		return sysError(err)
	}
	a.cfg, err = configFromViper(v)
	if err != nil {
		return err
	}
	return nil
}

// logger returns the diagnostics logger for this invocation.
func (a *app) logger(cmd *cobra.Command) *log.Logger {
	if !a.verbose {
		return log.New(io.Discard, "", 0)
	}
	return log.New(cmd.ErrOrStderr(), "giftgrid: ", log.LstdFlags|log.Lmsgprefix)
}

// withBackend attaches the session database for the duration of fn.
func (a *app) withBackend(fn func(*sqlite.Backend) error) error {
	dataDir, err := paths.ResolveDataDir(a.dataDir, a.cfg.DataDir)
	if err != nil {
		return sysError(fmt.Errorf("resolve data dir: %w", err))
	}

	backend := sqlite.NewBackend()
	if err := backend.Attach(dataDir); err != nil {
		return sysError(fmt.Errorf("attach backend: %w", err))
	}
	defer backend.Detach()

	return fn(backend)
}

// withPlanner opens the current session (starting one if needed) for the
// duration of fn.
func (a *app) withPlanner(cmd *cobra.Command, fn func(context.Context, *planner.Planner) error) error {
	return a.withBackend(func(b *sqlite.Backend) error {
		p, err := planner.Open(a.cfg, b, a.logger(cmd))
		if err != nil {
			return sysError(err)
		}
		err = fn(cmd.Context(), p)
		if cerr := p.Close(); cerr != nil && err == nil {
			err = sysError(cerr)
		}
		return err
	})
}

// exitError carries a non-default exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysError marks err as an environment or storage failure.
func sysError(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// exitCode maps an error to the process exit code. Anything not marked as a
// system error is the user's to fix.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}
