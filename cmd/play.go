package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pugivik/sumas/internal/config"
	"github.com/pugivik/sumas/internal/session"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a practice session right away",
	Long: `Start a practice session without going through the menu.

Modes:
  classic  15 exercises, no clock
  timed    15 exercises, 20 seconds each
  bonus    like timed, a correct answer adds 15 seconds to the next one
  blitz    as many as you can in 90 seconds

Flags override the config file. Exercise and timer settings in the file
only apply to the mode it names.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		ov := playOverrides(cmd)
		mode, err := file.ModeOr(session.ModeClassic)
		if err != nil {
			return err
		}
		if ov.Mode != nil {
			if mode, err = session.ParseMode(*ov.Mode); err != nil {
				return err
			}
		}
		// Fail before the TUI starts if the combination is unplayable.
		if _, err := config.Resolve(file, ov); err != nil {
			return err
		}

		return runApp(cmd, mode, ov)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("mode", "m", "", "Game mode: classic, timed, bonus or blitz")
	cmd.Flags().IntP("exercises", "n", 0, "Number of exercises (0 = no limit)")
	cmd.Flags().Int("problem-seconds", 0, "Seconds per exercise (0 = no problem timer)")
	cmd.Flags().Int("game-seconds", 0, "Seconds for the whole game (0 = no game timer)")
	cmd.Flags().Int("bonus-seconds", 0, "Seconds added to the next exercise after a correct answer")
}

// playOverrides collects only the flags the user actually set.
func playOverrides(cmd *cobra.Command) config.Overrides {
	var ov config.Overrides
	flags := cmd.Flags()
	if flags.Changed("mode") {
		v, _ := flags.GetString("mode")
		ov.Mode = &v
	}
	intFlag := func(name string) *int {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetInt(name)
		return &v
	}
	ov.Exercises = intFlag("exercises")
	ov.ProblemSeconds = intFlag("problem-seconds")
	ov.GameSeconds = intFlag("game-seconds")
	ov.BonusSeconds = intFlag("bonus-seconds")
	return ov
}
