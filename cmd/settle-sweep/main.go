package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/gocarina/gocsv"

	"sandfall/internal/config"
	"sandfall/internal/session"
	"sandfall/internal/telemetry"
)

type scenario struct {
	size    int
	cell    int
	drops   int
	pattern session.Pattern
	seed    int64
}

func (s scenario) key() string {
	return fmt.Sprintf("%dx%d/%d %-6s drops=%d", s.size, s.size, s.cell, s.pattern, s.drops)
}

type scenarioResult struct {
	Size     int    `csv:"size"`
	Cell     int    `csv:"cell"`
	Pattern  string `csv:"pattern"`
	Drops    int    `csv:"drops"`
	Seed     int64  `csv:"seed"`
	Spawned  int    `csv:"spawned"`
	Ticks    int    `csv:"ticks"`
	Settled  bool   `csv:"settled"`
	Violated string `csv:"violation"`

	scenario scenario `csv:"-"`
}

func main() {
	maxTicks := flag.Int("max-ticks", 50000, "tick budget per scenario")
	seeds := flag.Int("seeds", 5, "seeds per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	csvPath := flag.String("csv", "", "write one row per run to this CSV file")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sizeOptions := []struct{ size, cell int }{
		{size: 200, cell: 4},
		{size: 400, cell: 4},
		{size: 400, cell: 8},
	}
	dropOptions := []int{100, 500, 2000}
	patternOptions := []session.Pattern{session.PatternPour, session.PatternRandom, session.PatternLine}

	var sets []scenario
	for _, sz := range sizeOptions {
		for _, drops := range dropOptions {
			for _, p := range patternOptions {
				for seed := 1; seed <= *seeds; seed++ {
					sets = append(sets, scenario{size: sz.size, cell: sz.cell, drops: drops, pattern: p, seed: int64(seed)})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d runs (%d workers, %d tick budget)\n", len(sets), *workers, *maxTicks)

	jobs := make(chan scenario)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sc := range jobs {
				results <- runScenario(sc, *maxTicks)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, sc := range sets {
			jobs <- sc
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	groups := map[string][]float64{}
	failures := 0
	for res := range results {
		all = append(all, res)
		if res.Violated != "" || !res.Settled {
			failures++
			logger.Error("run failed", "scenario", res.scenario.key(), "seed", res.Seed,
				"settled", res.Settled, "violation", res.Violated)
			continue
		}
		k := res.scenario.key()
		groups[k] = append(groups[k], float64(res.Ticks))
	}
	elapsed := time.Since(start)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("\nTicks to rest (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for _, k := range keys {
		fmt.Printf("%-36s %s\n", k, telemetry.Summarize(groups[k]))
	}

	if *csvPath != "" {
		sort.Slice(all, func(i, j int) bool {
			if all[i].scenario.key() != all[j].scenario.key() {
				return all[i].scenario.key() < all[j].scenario.key()
			}
			return all[i].Seed < all[j].Seed
		})
		if err := writeCSV(*csvPath, all); err != nil {
			logger.Error("writing results", "error", err)
			os.Exit(1)
		}
	}
	if failures > 0 {
		fmt.Printf("\n%d of %d runs failed\n", failures, len(all))
		os.Exit(1)
	}
}

func runScenario(sc scenario, maxTicks int) scenarioResult {
	cfg := config.DefaultConfig()
	cfg.Width = sc.size
	cfg.Height = sc.size
	cfg.CellSize = sc.cell
	cfg.Seed = sc.seed

	sess := session.New(cfg)
	res := sess.Drop(sc.pattern, sc.drops, maxTicks)

	out := scenarioResult{
		Size:     sc.size,
		Cell:     sc.cell,
		Pattern:  sc.pattern.String(),
		Drops:    sc.drops,
		Seed:     sc.seed,
		Spawned:  res.Spawned,
		Ticks:    res.Ticks,
		Settled:  res.Settled,
		scenario: sc,
	}
	if err := sess.World().Check(); err != nil {
		out.Violated = err.Error()
	}
	return out
}

func writeCSV(path string, rows []scenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&rows, f); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}
