// Package shell is the interactive REPL driver for playing and analyzing
// games: human or engine moves, block placement, undo, and self-play.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"

	"github.com/ataxx-engine/ataxx/automatic"
	"github.com/ataxx-engine/ataxx/board"
	"github.com/ataxx-engine/ataxx/config"
	"github.com/ataxx-engine/ataxx/game"
)

var errQuit = errors.New("quit")

type ShellController struct {
	l    *readline.Instance
	cfg  *config.Config
	game *game.Game
	seed uint64
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func usage(w io.Writer) {
	showMessage(`commands:
new                 start a new game (red manual, blue automated)
move <mv>           play a move for the manual side, e.g. move a1-a2 (or - to pass)
block <sq>          place a block (and its mirror blocks) before the first move, e.g. block c2
auto <color>        put red or blue under engine control
manual <color>      take manual control of red or blue
undo                take back the last move
print               show the board
depth <n>           set engine search depth
seed <n>            set the engine seed for the next new game
selfplay <n> [t]    play n engine-vs-engine games on t threads
help                this message
exit                leave the shell`, w)
}

// NewShellController creates the REPL.
func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mataxx>\033[0m ",
		HistoryFile:     "/tmp/ataxx-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = frand.Uint64n(1 << 62)
	}
	sc := &ShellController{l: l, cfg: cfg, seed: seed}
	sc.newGame()
	return sc
}

func (sc *ShellController) newGame() {
	sc.game = game.New(sc.cfg, sc.seed)
	sc.game.SetManual(board.Red, func() (string, error) {
		return "", errors.New("manual players move via the move command")
	})
	sc.showBoard()
}

func (sc *ShellController) showBoard() {
	showMessage(sc.game.Board().ToString(sc.cfg.BoardLegends), sc.l.Stderr())
}

// playAutoTurns lets the engine move for as long as it is an automated
// player's turn.
func (sc *ShellController) playAutoTurns() error {
	for sc.game.Playing() && sc.game.CurrentPlayer().IsAuto() {
		mover := sc.game.Board().WhoseMove()
		mv, err := sc.game.PlayTurn()
		if err != nil {
			return err
		}
		showMessage(fmt.Sprintf("%s plays %s", mover, mv), sc.l.Stderr())
		sc.showBoard()
	}
	if !sc.game.Playing() {
		showMessage(sc.game.Result(), sc.l.Stderr())
	}
	return nil
}

func parseColor(s string) (board.PieceColor, error) {
	switch s {
	case "red", "r":
		return board.Red, nil
	case "blue", "b":
		return board.Blue, nil
	}
	return board.Empty, fmt.Errorf("no such color %q", s)
}

func (sc *ShellController) executeLine(line string) error {
	fields, err := shellquote.Split(line)
	if err != nil {
		return err
	}
	if len(fields) == 0 {
		return nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "new":
		sc.newGame()
		return sc.playAutoTurns()

	case "move", "pass":
		mv := "-"
		if cmd == "move" {
			if len(args) != 1 {
				return errors.New("move needs a single argument like a1-a2")
			}
			mv = args[0]
		}
		if !sc.game.Playing() {
			return errors.New("the game is over; start a new one")
		}
		if sc.game.CurrentPlayer().IsAuto() {
			return fmt.Errorf("it is %s's move and that side is automated", sc.game.Board().WhoseMove())
		}
		if err := sc.game.Board().MakeMoveString(mv); err != nil {
			return err
		}
		sc.showBoard()
		return sc.playAutoTurns()

	case "block":
		if len(args) != 1 {
			return errors.New("block needs a square like c2")
		}
		if err := sc.game.Board().SetBlockString(args[0]); err != nil {
			return err
		}
		sc.showBoard()
		return nil

	case "auto", "manual":
		if len(args) != 1 {
			return fmt.Errorf("%s needs a color", cmd)
		}
		color, err := parseColor(args[0])
		if err != nil {
			return err
		}
		if cmd == "auto" {
			sc.game.SetAuto(color)
			return sc.playAutoTurns()
		}
		sc.game.SetManual(color, func() (string, error) {
			return "", errors.New("manual players move via the move command")
		})
		return nil

	case "undo":
		sc.game.Board().Undo()
		sc.showBoard()
		return nil

	case "print", "board":
		sc.showBoard()
		return nil

	case "depth":
		if len(args) != 1 {
			return errors.New("depth needs a number")
		}
		d, err := strconv.Atoi(args[0])
		if err != nil || d < 1 {
			return errors.New("depth must be a positive number")
		}
		sc.cfg.SearchDepth = d
		// Re-create automated players so the new depth takes effect now.
		for _, color := range []board.PieceColor{board.Red, board.Blue} {
			if sc.game.Player(color).IsAuto() {
				sc.game.SetAuto(color)
			}
		}
		return nil

	case "seed":
		if len(args) != 1 {
			return errors.New("seed needs a number")
		}
		s, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return errors.New("seed must be a number")
		}
		sc.seed = s
		showMessage("seed takes effect on the next new game", sc.l.Stderr())
		return nil

	case "selfplay":
		n := 10
		threads := sc.cfg.Threads
		if len(args) > 0 {
			if n, err = strconv.Atoi(args[0]); err != nil {
				return errors.New("selfplay needs a game count")
			}
		}
		if len(args) > 1 {
			if threads, err = strconv.Atoi(args[1]); err != nil {
				return errors.New("thread count must be a number")
			}
		}
		return automatic.StartCompVCompGames(context.Background(), sc.cfg, n,
			threads, sc.seed, sc.cfg.SelfplayLog)

	case "help":
		usage(sc.l.Stderr())
		return nil

	case "exit", "quit", "bye":
		return errQuit
	}
	return fmt.Errorf("command %q not found; try help", cmd)
}

// Loop reads and executes commands until exit or EOF.
func (sc *ShellController) Loop() {
	defer sc.l.Close()
	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}
		if err := sc.executeLine(line); err != nil {
			if errors.Is(err, errQuit) {
				break
			}
			showMessage("error: "+err.Error(), sc.l.Stderr())
		}
	}
	log.Debug().Msg("leaving shell loop")
}
