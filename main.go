package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/dejny/wordle/assets"
	"github.com/dejny/wordle/internal/auth"
	"github.com/dejny/wordle/internal/config"
	"github.com/dejny/wordle/internal/game"
	"github.com/dejny/wordle/internal/httpserver"
	"github.com/dejny/wordle/internal/session"
	"github.com/dejny/wordle/internal/sqlitedb"
	"github.com/dejny/wordle/internal/store"
	"github.com/dejny/wordle/internal/words"
	"github.com/dejny/wordle/internal/wordsource"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	setupLogging(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	lx, err := words.Load(cfg.AnswersFile, cfg.AllowedFile)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load word lists")
	}
	answers, allowed := lx.Stats()
	log.Info().Int("answers", answers).Int("allowed", allowed).Msg("word lists loaded")

	db, err := sqlitedb.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("failed to open database")
	}
	defer db.Close()
	if err := sqlitedb.Migrate(ctx, db, assets.Migrations()); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	src, err := buildSource(ctx, cfg, lx, db)
	if err != nil {
		log.Fatal().Err(err).Str("source", cfg.WordSource).Msg("failed to set up word source")
	}

	sessions, err := store.NewMemoryStore(cfg.SessionCapacity)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}
	var dict game.Dictionary
	if cfg.StrictGuesses {
		dict = lx
	}

	srv := httpserver.New(httpserver.Deps{
		Config:   cfg,
		Sessions: session.NewManager(sessions, src, dict),
		Users:    auth.NewService(db, cfg.JWTSecret, time.Duration(cfg.JWTExpiresDays)*24*time.Hour),
		Lexicon:  lx,
		Source:   src,
	})

	log.Info().
		Str("port", cfg.Port).
		Str("env", cfg.Env).
		Str("source", cfg.WordSource).
		Bool("strictGuesses", cfg.StrictGuesses).
		Msg("starting wordle server")
	if err := srv.Start(ctx, ":"+cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("server stopped")
}

// setupLogging applies the configured level; outside production logs are
// pretty-printed to stderr.
func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
}

// buildSource picks the secret word backend named by WORD_SOURCE.
func buildSource(ctx context.Context, cfg *config.Config, lx *words.Lexicon, db *sql.DB) (wordsource.Source, error) {
	switch cfg.WordSource {
	case config.SourceList:
		return &wordsource.List{Lexicon: lx}, nil
	case config.SourceDaily:
		return &wordsource.Daily{Answers: lx.Answers(), Salt: cfg.DailySalt}, nil
	case config.SourceSQLite:
		src := &wordsource.SQL{DB: db}
		n, err := src.Count(ctx)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			if err := src.Seed(ctx, lx.Answers()); err != nil {
				return nil, err
			}
			log.Info().Int("words", len(lx.Answers())).Msg("seeded words table")
		}
		return src, nil
	case config.SourceHTTP:
		return wordsource.NewHTTP(cfg.WordAPIURL, cfg.WordAPITimeout), nil
	default:
		return nil, fmt.Errorf("unknown word source %q", cfg.WordSource)
	}
}
