// Command pathfinder-cli is a thin demo entrypoint: it loads a small
// order book and a search configuration, runs one of the three
// orchestration modes, and logs the result.
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mExOms/pathfinder/internal/clock"
	"github.com/mExOms/pathfinder/internal/config"
	"github.com/mExOms/pathfinder/pkg/pathfinder"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)

	configPath := flag.String("config", "", "path to a YAML/JSON config file (optional)")
	flag.Parse()

	runID := uuid.NewString()
	log := logger.WithField("runID", runID)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("interrupt received; search runs to completion or its own time budget, not cancellable mid-expansion")
	}()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	book, err := config.LoadOrderBook(cfg.OrdersPath)
	if err != nil {
		log.Fatalf("failed to load order book: %v", err)
	}

	req := pathfinder.PathSearchRequest{
		OrderBook:   book,
		SourceAsset: cfg.SourceAsset,
		TargetAsset: cfg.TargetAsset,
		Config: pathfinder.PathSearchConfig{
			SpendAmount: pathfinder.Money{
				Currency: cfg.SpendCurrency,
				Amount:   cfg.SpendAmount,
			},
			ToleranceMin:      cfg.ToleranceMin,
			ToleranceMax:      cfg.ToleranceMax,
			HopsMin:           cfg.HopsMin,
			HopsMax:           cfg.HopsMax,
			ResultLimit:       cfg.ResultLimit,
			MaxExpansions:     cfg.MaxExpansions,
			MaxVisitedStates:  cfg.MaxVisitedStates,
			TimeBudgetMs:      &cfg.TimeBudgetMs,
			ThrowOnGuardLimit: cfg.ThrowOnGuard,
		},
	}

	clk := clock.Real{}

	switch cfg.Mode {
	case "disjoint":
		outcome, err := pathfinder.FindExecutionPlansDisjoint(req, cfg.K, clk)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		logOutcome(log, "disjoint", len(outcome.Results), outcome.Guard)
	case "reusable":
		outcome, err := pathfinder.FindExecutionPlansReusable(req, cfg.K, clk)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		logOutcome(log, "reusable", len(outcome.Results), outcome.Guard)
	default:
		outcome, err := pathfinder.FindPaths(req, clk)
		if err != nil {
			log.Fatalf("search failed: %v", err)
		}
		logOutcome(log, "path", len(outcome.Results), outcome.Guard)
		for i, r := range outcome.Results {
			log.WithFields(logrus.Fields{
				"rank":          i,
				"totalSpent":    r.TotalSpent.Amount + " " + r.TotalSpent.Currency,
				"totalReceived": r.TotalReceived.Amount + " " + r.TotalReceived.Currency,
				"cost":          r.Cost,
				"hops":          r.Hops,
				"route":         r.Route,
			}).Info("path result")
		}
	}
}

func logOutcome(log *logrus.Entry, mode string, resultCount int, guard pathfinder.GuardReport) {
	log.WithFields(logrus.Fields{
		"mode":                 mode,
		"results":              resultCount,
		"expansionsReached":    guard.ExpansionsReached,
		"visitedStatesReached": guard.VisitedStatesReached,
		"timeBudgetReached":    guard.TimeBudgetReached,
		"expansions":           guard.Expansions,
		"elapsedMilliseconds":  guard.ElapsedMilliseconds,
	}).Info("search complete")
}
