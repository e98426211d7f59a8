package session

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidConfig = errors.New("invalid session config")
	ErrUnknownMode   = errors.New("unknown mode")
)

// Mode names a built-in session preset.
type Mode string

const (
	ModeClassic Mode = "classic" // fixed exercise count, no timers
	ModeTimed   Mode = "timed"   // fixed exercise count, per-problem countdown
	ModeBonus   Mode = "bonus"   // timed, correct answers add time to the next problem
	ModeBlitz   Mode = "blitz"   // open-ended, bounded by a total game countdown
)

// DisplayName returns the label shown in menus.
func (m Mode) DisplayName() string {
	switch m {
	case ModeClassic:
		return "Clásico"
	case ModeTimed:
		return "Contrarreloj"
	case ModeBonus:
		return "Tiempo extra"
	case ModeBlitz:
		return "Relámpago"
	}
	return string(m)
}

const (
	DefaultTotalExercises = 15
	DefaultProblemSeconds = 20
	DefaultBonusSeconds   = 15
	DefaultGameSeconds    = 90
	DefaultNoticeDuration = 3 * time.Second
)

// Points holds the score delta for each outcome.
type Points struct {
	Correct   int
	Incorrect int
	Invalid   int
	Timeout   int
}

// DefaultPoints awards +3 for a correct answer and -1 for anything else.
var DefaultPoints = Points{Correct: 3, Incorrect: -1, Invalid: -1, Timeout: -1}

// Config selects the behavior of a session. Zero-valued limits disable the
// corresponding feature.
type Config struct {
	Mode Mode

	// TotalExercises ends the session after this many problems (0 = no limit).
	TotalExercises int

	// ProblemSeconds is the base per-problem countdown (0 = no problem timer).
	ProblemSeconds int

	// GameSeconds is the total session countdown (0 = no game timer).
	GameSeconds int

	// BonusSeconds is added to the next problem's countdown after a correct answer.
	BonusSeconds int

	InitialScore int
	Points       Points

	// NoticeDuration is how long notices should stay visible.
	NoticeDuration time.Duration

	// NotifyLate emits a notice when a submission arrives for a problem that
	// already timed out.
	NotifyLate bool

	// Tick is the countdown granularity. Defaults to one second.
	Tick time.Duration
}

// Preset returns the built-in config for mode.
func Preset(mode Mode) (Config, error) {
	cfg := Config{
		Mode:           mode,
		Points:         DefaultPoints,
		NoticeDuration: DefaultNoticeDuration,
		Tick:           time.Second,
	}
	switch mode {
	case ModeClassic:
		cfg.TotalExercises = DefaultTotalExercises
		cfg.Points.Invalid = 0
	case ModeTimed:
		cfg.TotalExercises = DefaultTotalExercises
		cfg.ProblemSeconds = DefaultProblemSeconds
		cfg.NotifyLate = true
	case ModeBonus:
		cfg.TotalExercises = DefaultTotalExercises
		cfg.ProblemSeconds = DefaultProblemSeconds
		cfg.BonusSeconds = DefaultBonusSeconds
	case ModeBlitz:
		cfg.ProblemSeconds = DefaultProblemSeconds
		cfg.GameSeconds = DefaultGameSeconds
		cfg.BonusSeconds = DefaultBonusSeconds
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return cfg, nil
}

// Modes returns the built-in modes in menu order.
func Modes() []Mode {
	return []Mode{ModeClassic, ModeTimed, ModeBonus, ModeBlitz}
}

// ParseMode resolves a mode name.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes() {
		if string(m) == s {
			return m, nil
		}
	}
	names := make([]string, 0, len(Modes()))
	for _, m := range Modes() {
		names = append(names, string(m))
	}
	sort.Strings(names)
	return "", fmt.Errorf("%w %q (want one of %v)", ErrUnknownMode, s, names)
}

// HasProblemTimer reports whether each problem counts down.
func (c Config) HasProblemTimer() bool { return c.ProblemSeconds > 0 }

// HasGameTimer reports whether the whole session counts down.
func (c Config) HasGameTimer() bool { return c.GameSeconds > 0 }

// HasExerciseLimit reports whether the session ends after a fixed count.
func (c Config) HasExerciseLimit() bool { return c.TotalExercises > 0 }

// Validate checks that the config describes a session that can end.
func (c Config) Validate() error {
	switch {
	case c.TotalExercises < 0:
		return fmt.Errorf("%w: exercises must be >= 0, got %d", ErrInvalidConfig, c.TotalExercises)
	case c.ProblemSeconds < 0:
		return fmt.Errorf("%w: problem seconds must be >= 0, got %d", ErrInvalidConfig, c.ProblemSeconds)
	case c.GameSeconds < 0:
		return fmt.Errorf("%w: game seconds must be >= 0, got %d", ErrInvalidConfig, c.GameSeconds)
	case c.BonusSeconds < 0:
		return fmt.Errorf("%w: bonus seconds must be >= 0, got %d", ErrInvalidConfig, c.BonusSeconds)
	case c.BonusSeconds > 0 && !c.HasProblemTimer():
		return fmt.Errorf("%w: bonus time requires a problem timer", ErrInvalidConfig)
	case !c.HasExerciseLimit() && !c.HasGameTimer():
		return fmt.Errorf("%w: session needs an exercise limit or a game timer", ErrInvalidConfig)
	case c.Tick < 0:
		return fmt.Errorf("%w: tick must be >= 0", ErrInvalidConfig)
	}
	return nil
}

func (c Config) tick() time.Duration {
	if c.Tick <= 0 {
		return time.Second
	}
	return c.Tick
}
