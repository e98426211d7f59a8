package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pugivik/sumas/internal/app"
	"github.com/pugivik/sumas/internal/config"
	"github.com/pugivik/sumas/internal/session"
)

// runApp opens the store, loads the config file and launches the TUI. When
// play is set the session starts right away, using flag overrides on top
// of the file.
func runApp(cmd *cobra.Command, play session.Mode, flags config.Overrides) error {
	file, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	opts := app.Options{
		EventRepo: st.EventRepo(),
		Configure: func(mode session.Mode) (session.Config, error) {
			name := string(mode)
			o := config.Overrides{Mode: &name}
			if mode == play {
				o.Exercises = flags.Exercises
				o.ProblemSeconds = flags.ProblemSeconds
				o.GameSeconds = flags.GameSeconds
				o.BonusSeconds = flags.BonusSeconds
			}
			return config.Resolve(file, o)
		},
		Play:   play,
		Splash: play == "",
	}
	return app.Run(opts)
}
