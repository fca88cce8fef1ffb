package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"hyperprune/internal/engine"
	"hyperprune/internal/game"
	"hyperprune/internal/tictactoe"
)

// 终端人机对战。坐标按 1 起的 (列, 行) 输入，Ctrl+D 退出。
func main() {
	size := flag.Int("size", 3, "board side, 3..8")
	ttCap := flag.Int("tt", -1, "transposition table entries (0 disables, -1 picks by size)")
	seed := flag.Uint64("seed", 0, "zobrist seed (0 uses the default)")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.WarnLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	cfg := engine.DefaultConfig(*size)
	if *ttCap >= 0 {
		cfg.TableCapacity = *ttCap
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	e, err := engine.NewEngine(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("engine init failed")
	}
	defer e.FreeTable()

	p := &prompter{in: bufio.NewScanner(os.Stdin), out: os.Stdout, size: *size}
	human := p.chooseSymbol()
	s, err := game.NewSession(*size, human)
	if err != nil {
		log.Fatal().Err(err).Msg("session init failed")
	}
	log.Debug().Str("session", s.ID).Int("tt", e.TableStats().Capacity).Msg("session started")

	for {
		if err := playRound(p, e, s); err != nil {
			if errors.Cause(err) != io.EOF {
				log.Error().Err(err).Msg("game aborted")
			}
			return
		}
		if !p.askRestart() {
			return
		}
		s.Restart()
	}
}

func playRound(p *prompter, e *engine.Engine, s *game.Session) error {
	if s.HumanToMove() {
		fmt.Fprint(p.out, s.Board.String())
	}
	for !s.Outcome.Over() {
		if s.HumanToMove() {
			mv, err := p.readMove(s.Board)
			if err != nil {
				return err
			}
			if _, err := s.Play(mv); err != nil {
				return err
			}
			continue
		}
		mv, out, err := s.PlayEngine(e)
		if err != nil {
			return err
		}
		fmt.Fprintf(p.out, "AI plays %v\n", mv)
		if !out.Over() {
			fmt.Fprint(p.out, s.Board.String())
		}
	}
	fmt.Fprint(p.out, s.Board.String())
	printResult(p.out, s)
	log.Debug().Str("history", s.HistoryString()).Msg("round finished")
	return nil
}

func printResult(w io.Writer, s *game.Session) {
	switch s.Outcome {
	case game.Tie:
		fmt.Fprintln(w, "It's a tie!")
	case game.XWins, game.OWins:
		winner := tictactoe.X
		if s.Outcome == game.OWins {
			winner = tictactoe.O
		}
		if winner == s.Human {
			fmt.Fprintln(w, "Player wins!")
		} else {
			fmt.Fprintln(w, "AI wins!")
		}
	}
	fmt.Fprintln(w)
}

type prompter struct {
	in   *bufio.Scanner
	out  io.Writer
	size int
}

func (p *prompter) line(prompt string) (string, error) {
	fmt.Fprint(p.out, prompt)
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", errors.Wrap(err, "read stdin")
		}
		return "", io.EOF
	}
	return strings.TrimSpace(p.in.Text()), nil
}

// chooseSymbol EOF 时默认执 x
func (p *prompter) chooseSymbol() tictactoe.Symbol {
	for {
		text, err := p.line("Choose your symbol (x/o): ")
		if err != nil {
			fmt.Fprintln(p.out, "\nEOF received. Defaulting to x.")
			return tictactoe.X
		}
		if text == "" {
			continue
		}
		s, err := tictactoe.ParseSymbol([]rune(text)[0])
		if err == nil {
			return s
		}
		fmt.Fprintln(p.out, "Please enter x or o.")
	}
}

func (p *prompter) coord(prompt string) (int, error) {
	for {
		text, err := p.line(prompt)
		if err != nil {
			return 0, err
		}
		v, err := strconv.Atoi(text)
		if err != nil {
			fmt.Fprintf(p.out, "Invalid input. Enter a number 1-%d.\n", p.size)
			continue
		}
		if v < 1 || v > p.size {
			fmt.Fprintf(p.out, "Out of range (1-%d).\n", p.size)
			continue
		}
		return v - 1, nil
	}
}

func (p *prompter) readMove(b tictactoe.Board) (tictactoe.Move, error) {
	for {
		col, err := p.coord("Input column: ")
		if err != nil {
			return tictactoe.Move{}, err
		}
		row, err := p.coord("Input row: ")
		if err != nil {
			return tictactoe.Move{}, err
		}
		if !b.IsEmptyCell(row, col) {
			fmt.Fprint(p.out, "Cell already occupied. Choose another.\n\n")
			continue
		}
		return tictactoe.Move{Row: row, Col: col}, nil
	}
}

func (p *prompter) askRestart() bool {
	for {
		text, err := p.line("Play again? (y/n): ")
		if err != nil {
			fmt.Fprintln(p.out)
			return false
		}
		switch strings.ToLower(text) {
		case "":
			continue
		case "y", "yes":
			fmt.Fprintln(p.out)
			return true
		case "n", "no":
			fmt.Fprintln(p.out)
			return false
		}
		fmt.Fprintln(p.out, "Please enter y or n.")
	}
}
