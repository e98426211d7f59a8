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

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals and the best score per mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()
		return printStats(cmd, st.EventRepo(), cmd.OutOrStdout())
	},
}

func printStats(cmd *cobra.Command, repo store.EventRepo, w io.Writer) error {
	ctx := cmd.Context()

	totals, err := repo.Totals(ctx)
	if err != nil {
		return fmt.Errorf("load totals: %w", err)
	}

	fmt.Fprintf(w, "Partidas:       %d\n", totals.Sessions)
	fmt.Fprintf(w, "Respuestas:     %d\n", totals.Answers)
	fmt.Fprintf(w, "Correctas:      %d (%.0f%%)\n", totals.Correct, totals.Accuracy()*100)
	fmt.Fprintf(w, "Sin tiempo:     %d\n", totals.Timeouts)
	fmt.Fprintf(w, "Tiempo jugado:  %s\n\n", layout.FormatSeconds(int(totals.Played.Seconds())))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Modo", "Récord")
	for _, mode := range session.Modes() {
		best, ok, err := repo.BestScore(ctx, string(mode))
		if err != nil {
			return fmt.Errorf("best score for %s: %w", mode, err)
		}
		value := "-"
		if ok {
			value = fmt.Sprint(best)
		}
		t.Row(mode.DisplayName(), value)
	}
	fmt.Fprintln(w, t.Render())
	return nil
}
