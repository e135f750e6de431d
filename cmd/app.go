// Package cmd implements the CLI application to play trading games.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/simtrade"
	"github.com/etnz/simtrade/config"
	"github.com/etnz/simtrade/date"
	"github.com/etnz/simtrade/ingest"
	"github.com/etnz/simtrade/store"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
	"golang.org/x/term"
)

// Commands lists every subcommand, in help order.
var Commands = []subcommands.Command{
	&newCmd{}, &gamesCmd{}, &useCmd{}, &statusCmd{},
	&previewCmd{}, &buyCmd{}, &sellCmd{}, &maxCmd{}, &advanceCmd{},
	&pauseCmd{}, &resumeCmd{}, &endCmd{}, &deleteCmd{},
	&txCmd{}, &exportCmd{},
	&loadCmd{}, &marketCmd{}, &pricesCmd{},
	&submitCmd{}, &leaderboardCmd{}, &achievementsCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "simtrade.yaml", "Path to the YAML configuration file")
var dbFile = flag.String("db", "", "Path to the game database, overrides the configuration")

// app holds what commands need to play.
type app struct {
	cfg    *config.Config
	store  *store.Store
	engine *simtrade.Engine // nil until loadEngine
}

// openApp loads the configuration and opens the database.
func openApp() (*app, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, err
	}
	if *dbFile != "" {
		cfg.Database.Path = *dbFile
	}
	st, err := store.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, store: st}, nil
}

func (a *app) Close() error { return a.store.Close() }

func (a *app) source() ingest.Source {
	if a.cfg.Data.Source == "" && a.cfg.Data.Ticker != "" {
		return ingest.EODHD(a.cfg.Data.Ticker, a.cfg.Data.APIKey, date.Date{}, date.Date{})
	}
	return ingest.Source{Location: a.cfg.Data.Source, Format: ingest.Format(a.cfg.Data.Format), JSONPath: a.cfg.Data.JSONPath}
}

// cacheKey identifies the configured source in the price cache, without
// secrets.
func (a *app) cacheKey() string {
	if a.cfg.Data.Source == "" && a.cfg.Data.Ticker != "" {
		return "eodhd:" + a.cfg.Data.Ticker
	}
	return a.cfg.Data.Source
}

// fetchRows loads rows from the configured source, reporting progress on
// stderr, and caches them in the database.
func (a *app) fetchRows(ctx context.Context) ([]simtrade.Row, error) {
	src := a.source()
	if src.Location == "" {
		return nil, errors.New("no price data source configured, set data.source or data.ticker")
	}
	cacheDir := a.cfg.Data.CacheDir
	if cacheDir == "" {
		cacheDir = os.TempDir()
	}
	rc, size, err := ingest.Open(ctx, ingest.NewDailyClient(cacheDir), src)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	bar := progressbar.DefaultBytes(size, "loading prices")
	rows, err := ingest.Read(io.TeeReader(rc, bar), src)
	bar.Finish()
	if err != nil {
		return nil, err
	}
	if err := a.store.CachePrices(ctx, a.cacheKey(), rows, time.Now()); err != nil {
		return nil, err
	}
	return rows, nil
}

// loadEngine builds the engine from the cached prices, fetching them again
// when the cache is stale.
func (a *app) loadEngine(ctx context.Context) (*simtrade.Engine, error) {
	if a.engine != nil {
		return a.engine, nil
	}
	rows, _, err := a.store.CachedPrices(ctx, a.cacheKey(), a.cfg.Data.CacheTTL, time.Now())
	if errors.Is(err, store.ErrNotFound) {
		log.Printf("price cache miss for %q, loading", a.cacheKey())
		rows, err = a.fetchRows(ctx)
	}
	if err != nil {
		return nil, err
	}
	series, err := simtrade.NewSeries(rows)
	if err != nil {
		return nil, err
	}
	a.engine = simtrade.NewEngine(series, a.cfg.Game.Currency)
	return a.engine, nil
}

// game returns the game with gameID, or the active game when gameID is empty.
func (a *app) game(ctx context.Context, gameID string) (simtrade.GameSession, error) {
	if gameID == "" {
		id, err := a.store.ActiveGame(ctx)
		if errors.Is(err, store.ErrNotFound) {
			return simtrade.GameSession{}, errors.New("no active game, start one with 'new' or select one with 'use'")
		}
		if err != nil {
			return simtrade.GameSession{}, err
		}
		gameID = id
	}
	return a.store.Session(ctx, gameID)
}

// checkAchievements unlocks and announces the achievements reached by g.
func (a *app) checkAchievements(ctx context.Context, g simtrade.GameSession) error {
	games, err := a.store.Sessions(ctx, g.UserID)
	if err != nil {
		return err
	}
	txs, err := a.store.Transactions(ctx, g.GameID)
	if err != nil {
		return err
	}
	done, err := a.store.Unlocked(ctx)
	if err != nil {
		return err
	}
	unlocked := make(map[string]bool, len(done))
	for id := range done {
		unlocked[id] = true
	}

	c := simtrade.NewAchievementContext(games, g, a.engine.ComputeStats(g), txs, a.engine.Series())
	var ids []string
	for _, ach := range simtrade.Evaluate(c, unlocked) {
		fmt.Printf("Achievement unlocked: %s (+%d points)\n", ach.Name, ach.Points)
		ids = append(ids, ach.ID)
	}
	if len(ids) == 0 {
		return nil
	}
	return a.store.Unlock(ctx, g.GameID, time.Now(), ids...)
}

// printMarkdown renders md for the terminal, or prints it as is when stdout
// is not a terminal.
func printMarkdown(md string) {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(md)
		return
	}
	out, err := glamour.Render(md, "auto")
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// fail prints err and returns the failure status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintln(os.Stderr, "Error:", err)
	return subcommands.ExitFailure
}
