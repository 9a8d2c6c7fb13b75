// Package automatic plays computer-vs-computer games, for engine
// regression and strength comparison. Games run across a worker pool;
// one CSV record per game goes to the result log.
package automatic

import (
	"context"
	"expvar"
	"fmt"
	"os"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"lukechampine.com/frand"

	"github.com/ataxx-engine/ataxx/board"
	"github.com/ataxx-engine/ataxx/config"
	"github.com/ataxx-engine/ataxx/game"
)

var (
	CVCCounter *expvar.Int
	IsPlaying  *expvar.Int
)

func init() {
	CVCCounter = expvar.NewInt("cvcCounter")
	IsPlaying = expvar.NewInt("isPlaying")
}

// Result is the outcome of one self-play game.
type Result struct {
	Seed        uint64
	Winner      board.PieceColor
	Moves       int
	RedPieces   int
	BluePieces  int
	Fingerprint uint64
}

func (r Result) csv() string {
	return fmt.Sprintf("%d,%s,%d,%d,%d,%x\n",
		r.Seed, r.Winner, r.Moves, r.RedPieces, r.BluePieces, r.Fingerprint)
}

// GameRunner plays single comp-vs-comp games.
type GameRunner struct {
	cfg     *config.Config
	logchan chan Result
}

// NewGameRunner instantiates a runner that reports each game on logchan.
func NewGameRunner(cfg *config.Config, logchan chan Result) *GameRunner {
	return &GameRunner{cfg: cfg, logchan: logchan}
}

// PlayGame runs one game with both sides automated, seeded by seed.
func (r *GameRunner) PlayGame(seed uint64) (Result, error) {
	g := game.New(r.cfg, seed)
	winner, err := g.Run()
	if err != nil {
		return Result{}, err
	}
	b := g.Board()
	res := Result{
		Seed:        seed,
		Winner:      winner,
		Moves:       b.NumMoves(),
		RedPieces:   b.RedPieces(),
		BluePieces:  b.BluePieces(),
		Fingerprint: b.Fingerprint(),
	}
	if r.logchan != nil {
		r.logchan <- res
	}
	return res, nil
}

// StartCompVCompGames plays numGames self-play games on threads workers,
// writing one CSV record per game to outputFilename and printing a winner
// tally and a game-length histogram when done. Each game gets a distinct
// seed derived from baseSeed so a run is reproducible end to end.
func StartCompVCompGames(ctx context.Context, cfg *config.Config,
	numGames int, threads int, baseSeed uint64, outputFilename string) error {

	if IsPlaying.Value() > 0 {
		return fmt.Errorf("games are already being played, please wait till complete")
	}
	if baseSeed == 0 {
		baseSeed = frand.Uint64n(1 << 62)
	}
	logfile, err := os.Create(outputFilename)
	if err != nil {
		return err
	}
	log.Debug().Int("games", numGames).Int("threads", threads).
		Uint64("base-seed", baseSeed).Msg("starting self-play")

	CVCCounter.Set(0)
	seeds := make(chan uint64, threads)
	results := make(chan Result, threads)

	workers := errgroup.Group{}
	for i := 0; i < threads; i++ {
		workers.Go(func() error {
			r := NewGameRunner(cfg, results)
			IsPlaying.Add(1)
			defer IsPlaying.Add(-1)
			for seed := range seeds {
				if _, err := r.PlayGame(seed); err != nil {
					return err
				}
				CVCCounter.Add(1)
			}
			return nil
		})
	}

	go func() {
	gameLoop:
		for i := 0; i < numGames; i++ {
			select {
			case seeds <- baseSeed + uint64(i):
			case <-ctx.Done():
				log.Info().Msg("got stop signal, exiting soon...")
				break gameLoop
			}
		}
		close(seeds)
	}()

	collected := make([]Result, 0, numGames)
	collectDone := make(chan struct{})
	go func() {
		defer close(collectDone)
		logfile.WriteString("seed,winner,moves,redpieces,bluepieces,fingerprint\n")
		for res := range results {
			logfile.WriteString(res.csv())
			collected = append(collected, res)
		}
		logfile.Close()
	}()

	err = workers.Wait()
	close(results)
	<-collectDone
	if err != nil {
		return err
	}
	printStats(collected)
	return nil
}

func printStats(results []Result) {
	if len(results) == 0 {
		return
	}
	tally := lo.CountValuesBy(results, func(r Result) string {
		if r.Winner == board.Empty {
			return "draw"
		}
		return r.Winner.String()
	})
	fmt.Printf("%d games: red %d, blue %d, draws %d\n", len(results),
		tally["red"], tally["blue"], tally["draw"])

	lengths := lo.Map(results, func(r Result, _ int) float64 {
		return float64(r.Moves)
	})
	fmt.Println("game lengths:")
	hist := histogram.Hist(10, lengths)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(40)); err != nil {
		log.Err(err).Msg("printing histogram")
	}
}
