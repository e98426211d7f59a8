package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pugivik/sumas/internal/session"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Equal(t, FileConfig{}, cfg)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_Decodes(t *testing.T) {
	path := writeConfig(t, `
[practice]
mode = "bonus"
exercises = 10
bonus-seconds = 5
notice-ms = 1500
late-notice = true

[scoring]
correct = 2
invalid = 0
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Practice.Mode)
	assert.Equal(t, "bonus", *cfg.Practice.Mode)
	assert.Equal(t, 10, *cfg.Practice.Exercises)
	assert.Nil(t, cfg.Practice.ProblemSeconds)
	assert.Equal(t, 0, *cfg.Scoring.Invalid)
	assert.Nil(t, cfg.Scoring.Timeout)
}

func TestLoadConfig_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[practice]\nspeed = 3\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "practice.speed")
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := writeConfig(t, "[practice\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestApply_OverlaysOnlySetFields(t *testing.T) {
	base, err := session.Preset(session.ModeBonus)
	require.NoError(t, err)

	f := FileConfig{
		Practice: PracticeConfig{Mode: strPtr("bonus"), Exercises: intPtr(5), NoticeMillis: intPtr(1500)},
		Scoring:  ScoringConfig{Correct: intPtr(2)},
	}
	got := f.Apply(base)

	assert.Equal(t, 5, got.TotalExercises)
	assert.Equal(t, 1500*time.Millisecond, got.NoticeDuration)
	assert.Equal(t, 2, got.Points.Correct)
	assert.Equal(t, base.Points.Incorrect, got.Points.Incorrect)
	assert.Equal(t, base.ProblemSeconds, got.ProblemSeconds)
	assert.Equal(t, base.BonusSeconds, got.BonusSeconds)
}

func TestApply_TimingOnlyForFileMode(t *testing.T) {
	f := FileConfig{
		Practice: PracticeConfig{Mode: strPtr("timed"), ProblemSeconds: intPtr(30), BonusSeconds: intPtr(10)},
		Scoring:  ScoringConfig{Correct: intPtr(5)},
	}

	classic, err := session.Preset(session.ModeClassic)
	require.NoError(t, err)
	got := f.Apply(classic)
	assert.False(t, got.HasProblemTimer(), "classic must stay untimed")
	assert.Equal(t, 0, got.BonusSeconds)
	assert.Equal(t, 5, got.Points.Correct, "scoring applies to every mode")
	assert.NoError(t, got.Validate())

	timed, err := session.Preset(session.ModeTimed)
	require.NoError(t, err)
	got = f.Apply(timed)
	assert.Equal(t, 30, got.ProblemSeconds)
	assert.Equal(t, 10, got.BonusSeconds)
}

func TestLoadConfig_TimingNeedsMode(t *testing.T) {
	path := writeConfig(t, "[practice]\nproblem-seconds = 30\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "practice.mode")

	path = writeConfig(t, "[practice]\nnotice-ms = 500\n")
	_, err = LoadConfig(path)
	assert.NoError(t, err)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		file    FileConfig
		ov      Overrides
		want    session.Mode
		check   func(t *testing.T, cfg session.Config)
		wantErr bool
	}{
		{
			name: "defaults to classic",
			want: session.ModeClassic,
			check: func(t *testing.T, cfg session.Config) {
				assert.Equal(t, 15, cfg.TotalExercises)
				assert.False(t, cfg.HasProblemTimer())
			},
		},
		{
			name: "file mode",
			file: FileConfig{Practice: PracticeConfig{Mode: strPtr("blitz")}},
			want: session.ModeBlitz,
			check: func(t *testing.T, cfg session.Config) {
				assert.Equal(t, 90, cfg.GameSeconds)
			},
		},
		{
			name: "flag mode beats file mode",
			file: FileConfig{Practice: PracticeConfig{Mode: strPtr("blitz")}},
			ov:   Overrides{Mode: strPtr("timed")},
			want: session.ModeTimed,
		},
		{
			name: "other modes ignore file timing",
			file: FileConfig{Practice: PracticeConfig{Mode: strPtr("timed"), ProblemSeconds: intPtr(30), BonusSeconds: intPtr(10)}},
			ov:   Overrides{Mode: strPtr("classic")},
			want: session.ModeClassic,
			check: func(t *testing.T, cfg session.Config) {
				assert.False(t, cfg.HasProblemTimer())
			},
		},
		{
			name: "flag value beats file value",
			file: FileConfig{Practice: PracticeConfig{Mode: strPtr("timed"), ProblemSeconds: intPtr(30)}},
			ov:   Overrides{Mode: strPtr("timed"), ProblemSeconds: intPtr(10)},
			want: session.ModeTimed,
			check: func(t *testing.T, cfg session.Config) {
				assert.Equal(t, 10, cfg.ProblemSeconds)
			},
		},
		{
			name:    "unknown file mode",
			file:    FileConfig{Practice: PracticeConfig{Mode: strPtr("zen")}},
			wantErr: true,
		},
		{
			name:    "unknown flag mode",
			ov:      Overrides{Mode: strPtr("zen")},
			wantErr: true,
		},
		{
			name:    "invalid result",
			ov:      Overrides{Mode: strPtr("blitz"), GameSeconds: intPtr(0)},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Resolve(tt.file, tt.ov)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Mode)
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestDefaultConfigPath_Env(t *testing.T) {
	t.Setenv("SUMAS_CONFIG", "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", DefaultConfigPath())
}

func TestDefaultConfigPath_XDG(t *testing.T) {
	t.Setenv("SUMAS_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	assert.Equal(t, filepath.Join("/xdg", "sumas", "config.toml"), DefaultConfigPath())
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("SUMAS_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)

	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sumas", "sumas.db"), p)

	info, err := os.Stat(filepath.Dir(p))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "x.db")
	t.Setenv("SUMAS_DB", p)

	got, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, p, got)
	_, err = os.Stat(filepath.Dir(p))
	assert.NoError(t, err)
}
