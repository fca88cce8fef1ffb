package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hyperprune/internal/engine"
	"hyperprune/internal/game"
)

func main() {
	size := flag.Int("size", 3, "board side, 3..8")
	ttCap := flag.Int("tt", -1, "transposition table entries (0 disables, -1 picks by size)")
	seed := flag.Uint64("seed", 0, "zobrist seed (0 uses the default)")
	games := flag.Int("games", 100, "games per worker")
	workers := flag.Int("workers", 1, "parallel workers, one engine each")
	oppName := flag.String("opponent", "perfect", "perfect | random")
	quiet := flag.Bool("quiet", false, "only print the final summary")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	opp, err := game.ParseOpponent(*oppName)
	if err != nil {
		log.Fatal().Err(err).Msg("bad -opponent")
	}
	cfg := engine.DefaultConfig(*size)
	if *ttCap >= 0 {
		cfg.TableCapacity = *ttCap
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("bad config")
	}
	if *workers < 1 {
		*workers = 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results := make([]game.Stats, *workers)
	tables := make([]engine.TableStats, *workers)
	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < *workers; w++ {
		w := w
		g.Go(func() error {
			// 每个 worker 一个引擎，置换表不跨 goroutine 共享
			e, err := engine.NewEngine(cfg)
			if err != nil {
				return err
			}
			defer e.FreeTable()
			st, err := game.SelfPlay(gctx, e, *size, *games, opp)
			results[w] = st
			tables[w] = e.TableStats()
			if !*quiet {
				log.Info().
					Int("worker", w).
					Int("games", st.Games).
					Int("ties", st.Ties).
					Int("engine_losses", st.EngineLosses).
					Dur("elapsed", st.Elapsed).
					Msg("worker done")
			}
			return err
		})
	}
	waitErr := g.Wait()

	total := game.MergeAll(results)
	printSummary(*size, opp, cfg, total, tables)
	if waitErr != nil {
		log.Error().Err(waitErr).Msg("self-play stopped early")
		os.Exit(1)
	}
	if total.EngineLosses > 0 {
		log.Warn().Int("losses", total.EngineLosses).Msg("engine lost games")
		os.Exit(2)
	}
}

func printSummary(size int, opp game.Opponent, cfg engine.Config, st game.Stats, tables []engine.TableStats) {
	fmt.Printf("\n=== Self-play %dx%d vs %s (seed %#x) ===\n", size, size, opp, cfg.Seed)
	fmt.Printf("Games: %d  X wins: %d  O wins: %d  Ties: %d\n", st.Games, st.XWins, st.OWins, st.Ties)
	fmt.Printf("Engine losses: %d\n", st.EngineLosses)
	fmt.Printf("Moves: %d  Nodes: %d  Time: %v  Games/s: %.1f\n", st.Moves, st.Nodes, st.Elapsed, st.Throughput())
	for i, ts := range tables {
		fmt.Printf("TT[%d] capacity=%d stores=%d hits=%d misses=%d collisions=%d hit-rate=%.2f%%\n",
			i, ts.Capacity, ts.Stores, ts.Hits, ts.Misses, ts.Collisions, ts.HitRate())
	}
}
