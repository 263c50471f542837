package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jsphweid/engraver/constants"
	"github.com/stretchr/testify/assert"
)

func writeScore(t *testing.T, path, notes string) {
	doc := "movement:\n  - bar:\n      - chan:\n          - notes: \"" + notes + "\"\n"
	assert.NoError(t, os.WriteFile(path, []byte(doc), 0644))
}

func TestOutPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "fugue.svg"), outPath("out", "scores/fugue.yaml", ".svg"))
	assert.Equal(t, filepath.Join("x", "a.b.mid"), outPath("x", "a.b.yml", ".mid"))
}

func TestEngraveInputDefaultsToScoreDir(t *testing.T) {
	assert := assert.New(t)
	t.Setenv("SCORE_DIR", "/tmp/chorales")
	assert.Equal("/tmp/chorales", engraveInput(nil))
	assert.Equal("fugue.yaml", engraveInput([]string{"fugue.yaml"}))
}

func TestEngraveFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "score.yaml")
	out := filepath.Join(dir, "score.svg")
	writeScore(t, in, "1/4C4 1/4D4 1/2E4")

	assert.NoError(engraveFile(in, out))
	svg, err := os.ReadFile(out)
	assert.NoError(err)
	assert.Contains(string(svg), "#e0a4")
	assert.NotContains(string(svg), "#ff9af0", "no cursor when engraving a file")

	assert.Error(engraveFile(filepath.Join(dir, "missing.yaml"), out))
}

func TestLayoutOptionsFollowConfig(t *testing.T) {
	assert := assert.New(t)
	defer func(c constants.Config) { config = c }(config)

	config.Clef = "bass"
	config.MaxBars = 2
	opts, err := layoutOptions()
	assert.NoError(err)
	assert.Equal(2, opts.MaxBars)
	assert.Equal(-2, int(opts.Staff.Top))

	config.Clef = "kazoo"
	_, err = layoutOptions()
	assert.Error(err)
}

func TestWatchReengraves(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	in := filepath.Join(dir, "score.yaml")
	out := filepath.Join(dir, "score.svg")
	writeScore(t, in, "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- watch(ctx, in, out, 10*time.Millisecond) }()

	assert.Eventually(func() bool {
		svg, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(svg), "#e4e3")
	}, 5*time.Second, 20*time.Millisecond, "first engraving has whole measure rests")

	// the watcher may not be registered yet, so keep writing until it fires
	assert.Eventually(func() bool {
		writeScore(t, in, "1/1G4")
		svg, err := os.ReadFile(out)
		return err == nil && strings.Contains(string(svg), "#e0a2")
	}, 5*time.Second, 100*time.Millisecond, "rewritten score is engraved again")

	cancel()
	assert.NoError(<-done)
}
