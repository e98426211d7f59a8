package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/pugivik/sumas/internal/session"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Scoring  ScoringConfig  `toml:"scoring"`
}

// PracticeConfig maps session settings. Nil fields are unset. The round
// and timer fields shape a single mode, so they need Mode and only apply
// to it; the rest apply to every mode.
type PracticeConfig struct {
	Mode           *string `toml:"mode"`
	Exercises      *int    `toml:"exercises"`
	ProblemSeconds *int    `toml:"problem-seconds"`
	GameSeconds    *int    `toml:"game-seconds"`
	BonusSeconds   *int    `toml:"bonus-seconds"`
	InitialScore   *int    `toml:"initial-score"`
	NoticeMillis   *int    `toml:"notice-ms"`
	LateNotice     *bool   `toml:"late-notice"`
}

// ScoringConfig maps point deltas. Nil fields are unset.
type ScoringConfig struct {
	Correct   *int `toml:"correct"`
	Incorrect *int `toml:"incorrect"`
	Invalid   *int `toml:"invalid"`
	Timeout   *int `toml:"timeout"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("stat config: %w", err)
	}
	var cfg FileConfig
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return FileConfig{}, fmt.Errorf("decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return FileConfig{}, fmt.Errorf("decode config: unknown key %q", undecoded[0].String())
	}
	if cfg.Practice.Mode == nil && cfg.Practice.hasTiming() {
		return FileConfig{}, fmt.Errorf("config: exercises and timer settings need practice.mode")
	}
	return cfg, nil
}

func (p PracticeConfig) hasTiming() bool {
	return p.Exercises != nil || p.ProblemSeconds != nil || p.GameSeconds != nil || p.BonusSeconds != nil
}

// ModeOr returns the configured mode, or fallback when unset.
func (f FileConfig) ModeOr(fallback session.Mode) (session.Mode, error) {
	if f.Practice.Mode == nil {
		return fallback, nil
	}
	return session.ParseMode(*f.Practice.Mode)
}

// Apply overlays the file settings on cfg. Exercise and timer settings
// are only applied when cfg is for the file's mode.
func (f FileConfig) Apply(cfg session.Config) session.Config {
	p := f.Practice
	if mode, err := f.ModeOr(""); err == nil && mode != "" && mode == cfg.Mode {
		setInt(&cfg.TotalExercises, p.Exercises)
		setInt(&cfg.ProblemSeconds, p.ProblemSeconds)
		setInt(&cfg.GameSeconds, p.GameSeconds)
		setInt(&cfg.BonusSeconds, p.BonusSeconds)
	}
	setInt(&cfg.InitialScore, p.InitialScore)
	if p.NoticeMillis != nil {
		cfg.NoticeDuration = time.Duration(*p.NoticeMillis) * time.Millisecond
	}
	if p.LateNotice != nil {
		cfg.NotifyLate = *p.LateNotice
	}

	s := f.Scoring
	setInt(&cfg.Points.Correct, s.Correct)
	setInt(&cfg.Points.Incorrect, s.Incorrect)
	setInt(&cfg.Points.Invalid, s.Invalid)
	setInt(&cfg.Points.Timeout, s.Timeout)
	return cfg
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
