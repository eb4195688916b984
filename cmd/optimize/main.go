package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/nulzo/prompt-optimizer-api/cmd"
	"github.com/nulzo/prompt-optimizer-api/internal/cli"
	"github.com/nulzo/prompt-optimizer-api/internal/config"
	"github.com/nulzo/prompt-optimizer-api/internal/core/domain"
	"github.com/nulzo/prompt-optimizer-api/internal/core/services"
	"github.com/nulzo/prompt-optimizer-api/internal/platform/logger"
	"github.com/nulzo/prompt-optimizer-api/internal/registry"
	"github.com/nulzo/prompt-optimizer-api/internal/scenarios"
	"github.com/nulzo/prompt-optimizer-api/internal/store"
	"github.com/nulzo/prompt-optimizer-api/internal/store/cache/memory"
	"github.com/nulzo/prompt-optimizer-api/internal/store/jsonfile"
	"github.com/nulzo/prompt-optimizer-api/internal/store/sqlite"

	// Import adapters to trigger init() registration
	_ "github.com/nulzo/prompt-optimizer-api/internal/adapters/optimizer/bedrock"
	_ "github.com/nulzo/prompt-optimizer-api/internal/adapters/optimizer/mock"
)

func main() {
	target := flag.String("target", "", "Optimize for a single target instead of the full table")
	output := flag.String("output", "", "Output directory (overrides config)")
	scenarioFile := flag.String("scenarios", "", "Scenario YAML file (overrides config)")
	useMock := flag.Bool("mock", false, "Use the mock optimizer instead of the configured one")
	printDocs := flag.Bool("print", false, "Print the optimized documents to stdout")
	timeout := flag.Duration("timeout", 10*time.Minute, "Overall run timeout")
	flag.Parse()

	cmd.CheckForUpdates()

	cfg, err := config.LoadConfig()
	if err != nil {
		fail("failed to load config: %v", err)
	}
	if *output != "" {
		cfg.Output.Dir = *output
	}
	if *scenarioFile != "" {
		cfg.ScenarioFile = *scenarioFile
	}
	if *useMock {
		cfg.Optimizer = domain.CapabilityConfig{Type: "mock"}
	}

	logger.Initialize(logger.DefaultConfig())
	defer logger.Sync()
	zlog := logger.Get()

	targets, err := cfg.TargetTable()
	if err != nil {
		fail("invalid target configuration: %v", err)
	}

	runTargets := targets.All()
	if *target != "" {
		if _, _, err := targets.Resolve(*target); err != nil {
			fail("%v", err)
		}
		runTargets = []string{*target}
	}

	optimizer, err := registry.Create(cfg.Optimizer)
	if err != nil {
		fail("failed to create optimizer: %v", err)
	}

	var collection []domain.Scenario
	if cfg.ScenarioFile != "" {
		collection, err = scenarios.LoadFile(cfg.ScenarioFile)
		if err != nil {
			fail("%v", err)
		}
	} else {
		collection = scenarios.Default()
	}

	var repo store.Repository
	if cfg.Database.Enabled {
		repo, err = sqlite.NewSQLiteStorage(cfg.Database.DSN)
		if err != nil {
			zlog.Warn("run history unavailable", zap.Error(err))
		} else {
			defer repo.Close()
		}
	}

	// One cache for the whole run, so redirected targets reuse their
	// substitute's optimizations across the matrix.
	resolver := services.NewResolver(targets, optimizer, memory.NewMemoryCache(), zlog)
	batch := services.NewBatchOptimizer(resolver, repo, cfg.Batch.FailFast, zlog)
	writer := jsonfile.NewWriter(cfg.Output.Dir)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("%s Optimizing %d scenario(s) for %d target(s) using %s\n\n",
		cli.Arrow(), len(collection), len(runTargets), cli.Style(optimizer.Name(), cli.Bold))

	exitCode := 0
	for _, t := range runTargets {
		outcome, err := batch.OptimizeScenarios(ctx, collection, t)
		if err != nil {
			fmt.Printf("%s %s: %v\n", cli.CrossMark(), t, err)
			exitCode = 1
			continue
		}

		path, err := writer.Write(t, outcome.Scenarios)
		if err != nil {
			fmt.Printf("%s %s: %v\n", cli.CrossMark(), t, err)
			exitCode = 1
			continue
		}

		mark := cli.CheckMark()
		if len(outcome.Failures) > 0 {
			mark = cli.CrossMark()
			exitCode = 1
		}
		fmt.Printf("%s %s\n", mark, cli.Style(t, cli.Bold))
		fmt.Printf("  %d optimized (%d direct, %d reused), %d failed\n",
			len(outcome.Scenarios), outcome.DirectCount(), outcome.ReusedCount(), len(outcome.Failures))
		fmt.Printf("  %s\n", cli.Style(path, cli.DimCode))
		if *printDocs {
			cli.PrettyPrint(outcome.Scenarios)
		}

		for _, key := range sortedKeys(outcome.Failures) {
			fmt.Printf("  %s %s: %s\n", cli.CrossMark(), key, outcome.Failures[key])
		}
	}

	os.Exit(exitCode)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", cli.CrossMark(), fmt.Sprintf(format, args...))
	os.Exit(1)
}
