package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/onbuch/tutor"
	"github.com/onbuch/tutor/sqlite"
)

const settingsLongDesc = `Read and write the AI settings store.

Known keys:
  ai.gemini_api_key         Gemini API key (falls back to GEMINI_API_KEY)
  ai.tutor_instruction      system instruction of the math tutor
  ai.assistant_instruction  system instruction of the general assistant`

func newSettingsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage AI settings",
		Long:  settingsLongDesc,
	}

	var reveal bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List stored settings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withStore(a, func(db *sqlite.DB) error {
				return listSettings(cmd.Context(), cmd.OutOrStdout(), db, reveal)
			})
		},
	}
	list.Flags().BoolVar(&reveal, "reveal", false, "Print secret values in clear")

	get := &cobra.Command{
		Use:   "get <key>",
		Short: "Print one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(a, func(db *sqlite.DB) error {
				v, err := db.Setting(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), v)
				return err
			})
		},
	}

	set := &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(a, func(db *sqlite.DB) error {
				return db.PutSetting(cmd.Context(), args[0], args[1])
			})
		},
	}

	del := &cobra.Command{
		Use:     "delete <key>",
		Aliases: []string{"rm"},
		Short:   "Remove one setting",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(a, func(db *sqlite.DB) error {
				return db.DeleteSetting(cmd.Context(), args[0])
			})
		},
	}

	cmd.AddCommand(list, get, set, del)
	return cmd
}

func withStore(a *app, fn func(*sqlite.DB) error) error {
	db, err := sqlite.Open(a.dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	return fn(db)
}

func listSettings(ctx context.Context, out io.Writer, db *sqlite.DB, reveal bool) error {
	settings, err := db.Settings(ctx)
	if err != nil {
		return err
	}
	if len(settings) == 0 {
		_, err := fmt.Fprintln(out, "no settings stored")
		return err
	}

	rows := make([][]string, len(settings))
	for i, s := range settings {
		value := s.Value
		if !reveal && isSecret(s.Key) {
			value = mask(value)
		}
		rows[i] = []string{s.Key, firstLine(value), s.UpdatedAt.Format(time.DateTime)}
	}
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("key", "value", "updated").
		Rows(rows...)
	_, err = fmt.Fprintln(out, t.String())
	return err
}

func isSecret(key string) bool {
	return key == tutor.SettingAPIKey || strings.HasSuffix(key, "_key")
}

// mask keeps the last four characters of a secret.
func mask(v string) string {
	if len(v) <= 4 {
		return strings.Repeat("*", len(v))
	}
	return strings.Repeat("*", 8) + v[len(v)-4:]
}

// firstLine shortens multi-line instructions for the table.
func firstLine(v string) string {
	line, _, cut := strings.Cut(v, "\n")
	if cut {
		return line + " …"
	}
	return line
}
