package config

import (
	"fmt"

	"github.com/pugivik/sumas/internal/session"
)

// Overrides carries command-line values. Nil fields are unset.
type Overrides struct {
	Mode           *string
	Exercises      *int
	ProblemSeconds *int
	GameSeconds    *int
	BonusSeconds   *int
}

// Resolve builds a session config: the mode preset, then the file, then
// the overrides. An explicit mode override wins over the file's mode.
func Resolve(file FileConfig, ov Overrides) (session.Config, error) {
	mode, err := file.ModeOr(session.ModeClassic)
	if err != nil {
		return session.Config{}, fmt.Errorf("config file: %w", err)
	}
	if ov.Mode != nil {
		if mode, err = session.ParseMode(*ov.Mode); err != nil {
			return session.Config{}, err
		}
	}

	cfg, err := session.Preset(mode)
	if err != nil {
		return session.Config{}, err
	}
	cfg = file.Apply(cfg)

	setInt(&cfg.TotalExercises, ov.Exercises)
	setInt(&cfg.ProblemSeconds, ov.ProblemSeconds)
	setInt(&cfg.GameSeconds, ov.GameSeconds)
	setInt(&cfg.BonusSeconds, ov.BonusSeconds)

	if err := cfg.Validate(); err != nil {
		return session.Config{}, err
	}
	return cfg, nil
}
