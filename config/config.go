package config

import "github.com/namsral/flag"

type Config struct {
	SearchDepth  int
	Seed         int64
	Threads      int
	SelfplayLog  string
	Debug        bool
	BoardLegends bool
}

func (c *Config) Load(args []string) error {
	fs := flag.NewFlagSet("ataxx", flag.ContinueOnError)
	fs.IntVar(&c.SearchDepth, "search-depth", 4, "maximum minimax search depth for automated players")
	fs.Int64Var(&c.Seed, "seed", 0, "random seed for automated players; 0 picks one at startup")
	fs.IntVar(&c.Threads, "threads", 4, "worker threads for self-play")
	fs.StringVar(&c.SelfplayLog, "selfplay-log", "/tmp/ataxx-selfplay.csv", "file for self-play game records")
	fs.BoolVar(&c.Debug, "debug", false, "enable debug logging")
	fs.BoolVar(&c.BoardLegends, "board-legends", true, "frame printed boards with row/column legends")
	err := fs.Parse(args)
	return err
}
