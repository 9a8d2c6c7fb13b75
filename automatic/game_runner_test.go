package automatic

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ataxx-engine/ataxx/board"
	"github.com/ataxx-engine/ataxx/config"
)

func TestPlayGame(t *testing.T) {
	cfg := &config.Config{SearchDepth: 1, Threads: 1}
	r := NewGameRunner(cfg, nil)

	res, err := r.PlayGame(17)
	require.NoError(t, err)
	assert.Equal(t, uint64(17), res.Seed)
	assert.Contains(t, []board.PieceColor{board.Red, board.Blue, board.Empty}, res.Winner)
	assert.Greater(t, res.Moves, 0)
	assert.NotZero(t, res.Fingerprint)

	// Same seed, same game.
	res2, err := r.PlayGame(17)
	require.NoError(t, err)
	assert.Equal(t, res, res2)
}

func TestPlayGameReportsOnChannel(t *testing.T) {
	cfg := &config.Config{SearchDepth: 1, Threads: 1}
	logchan := make(chan Result, 1)
	r := NewGameRunner(cfg, logchan)

	res, err := r.PlayGame(3)
	require.NoError(t, err)
	assert.Equal(t, res, <-logchan)
}

func TestStartCompVCompGames(t *testing.T) {
	cfg := &config.Config{SearchDepth: 1, Threads: 1}
	out := filepath.Join(t.TempDir(), "selfplay.csv")

	err := StartCompVCompGames(context.Background(), cfg, 3, 2, 100, out)
	require.NoError(t, err)
	assert.EqualValues(t, 3, CVCCounter.Value())
	assert.EqualValues(t, 0, IsPlaying.Value())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4) // header plus one record per game
	assert.Equal(t, "seed,winner,moves,redpieces,bluepieces,fingerprint", lines[0])
	for _, line := range lines[1:] {
		assert.Len(t, strings.Split(line, ","), 6)
	}
}
