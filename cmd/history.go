package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/pugivik/sumas/internal/session"
	"github.com/pugivik/sumas/internal/store"
	"github.com/pugivik/sumas/internal/ui/layout"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past sessions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		modeName, _ := cmd.Flags().GetString("mode")

		opts := store.QueryOpts{Limit: limit}
		if modeName != "" {
			mode, err := session.ParseMode(modeName)
			if err != nil {
				return err
			}
			opts.Mode = string(mode)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		return printHistory(cmd, st.EventRepo(), opts, cmd.OutOrStdout())
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of sessions to show (0 = all)")
	historyCmd.Flags().StringP("mode", "m", "", "Only show sessions of this mode")
}

func printHistory(cmd *cobra.Command, repo store.EventRepo, opts store.QueryOpts, w io.Writer) error {
	records, err := repo.QuerySessionSummaries(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	if len(records) == 0 {
		fmt.Fprintln(w, "Aún no hay partidas.")
		return nil
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Fecha", "Modo", "Puntos", "Aciertos", "Duración", "Fin")
	for _, r := range records {
		t.Row(
			r.Timestamp.Local().Format("2006-01-02 15:04"),
			session.Mode(r.Mode).DisplayName(),
			fmt.Sprint(r.Score),
			fmt.Sprintf("%d/%d", r.Correct, r.Resolved()),
			layout.FormatSeconds(r.DurationSecs),
			endReasonLabel(r.EndReason),
		)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}

func endReasonLabel(reason string) string {
	switch session.EndReason(reason) {
	case session.EndExercises:
		return "completada"
	case session.EndTimeUp:
		return "tiempo"
	case session.EndQuit:
		return "abandonada"
	}
	return reason
}
