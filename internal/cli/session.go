package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/giftgrid/internal/sqlite"
	"github.com/mesh-intelligence/giftgrid/pkg/types"
)

func newSessionCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage the planning session",
		Long: "A session owns the cached catalog responses, the grid and the clipboard.\n" +
			"Commands that need a session start one when none is active.",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Start a new session and make it current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(b *sqlite.Backend) error {
				id, err := b.CreateSession()
				if err != nil {
					return sysError(err)
				}
				return a.showSession(cmd.OutOrStdout(), b, id)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(b *sqlite.Backend) error {
				id, err := currentSession(b)
				if err != nil {
					return err
				}
				return a.showSession(cmd.OutOrStdout(), b, id)
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "end",
		Short: "End the current session and delete its data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(b *sqlite.Backend) error {
				id, err := currentSession(b)
				if err != nil {
					return err
				}
				if err := b.EndSession(id); err != nil {
					return sysError(err)
				}
				return a.write(cmd.OutOrStdout(), map[string]string{"ended": id}, func(w io.Writer) error {
					_, err := fmt.Fprintf(w, "Ended session %s\n", id)
					return err
				})
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "export <file>",
		Short: "Write the session's cached catalog responses to a JSONL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(b *sqlite.Backend) error {
				id, err := currentSession(b)
				if err != nil {
					return err
				}
				n, err := b.ExportCache(id, args[0])
				if err != nil {
					return sysError(err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported %d cached responses to %s\n", n, args[0])
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Seed the session cache from a file written by session export",
		Long: "Import stores the responses of a snapshot in the current session, starting one\n" +
			"if needed, so the catalog can be browsed without the API. Responses the\n" +
			"session already cached are kept.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withBackend(func(b *sqlite.Backend) error {
				id, err := b.CurrentSession()
				if errors.Is(err, types.ErrSessionNotFound) {
					id, err = b.CreateSession()
				}
				if err != nil {
					return sysError(err)
				}
				n, err := b.ImportCache(id, args[0])
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Imported %d cached responses into session %s\n", n, id)
				return nil
			})
		},
	})
	return cmd
}

func currentSession(b *sqlite.Backend) (string, error) {
	id, err := b.CurrentSession()
	if errors.Is(err, types.ErrSessionNotFound) {
		return "", fmt.Errorf("no active session: %w", err)
	}
	if err != nil {
		return "", sysError(err)
	}
	return id, nil
}

func (a *app) showSession(w io.Writer, b *sqlite.Backend, id string) error {
	info, err := b.Session(id)
	if err != nil {
		return sysError(err)
	}
	return a.write(w, info, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Session:  %s\nStarted:  %s\nCached:   %d responses\n",
			info.ID, info.CreatedAt.Local().Format(time.DateTime), info.CachedKeys)
		return err
	})
}
