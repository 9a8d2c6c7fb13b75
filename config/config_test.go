package config

import (
	"testing"

	"github.com/matryer/is"
)

func TestLoadDefaults(t *testing.T) {
	is := is.New(t)
	var c Config
	is.NoErr(c.Load(nil))
	is.Equal(c.SearchDepth, 4)
	is.Equal(c.Threads, 4)
	is.Equal(c.Seed, int64(0))
	is.Equal(c.Debug, false)
	is.Equal(c.BoardLegends, true)
	is.Equal(c.SelfplayLog, "/tmp/ataxx-selfplay.csv")
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	var c Config
	is.NoErr(c.Load([]string{"-search-depth", "6", "-seed", "99", "-debug"}))
	is.Equal(c.SearchDepth, 6)
	is.Equal(c.Seed, int64(99))
	is.Equal(c.Debug, true)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	var c Config
	is.True(c.Load([]string{"-no-such-flag"}) != nil)
}
