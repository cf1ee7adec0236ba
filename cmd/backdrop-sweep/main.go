// Command backdrop-sweep measures how link distance and node count shape the
// density of the mesh across several seeds, to help pick defaults for a
// given viewport.
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"backdrop/internal/background"
	"backdrop/internal/config"
	"backdrop/internal/core"
)

type paramSet struct {
	distance float64
	nodes    int
	seed     int64
}

func (p paramSet) String() string {
	return fmt.Sprintf("distance=%.0f nodes=%d seed=%d", p.distance, p.nodes, p.seed)
}

type scenarioResult struct {
	params  paramSet
	density background.Density
}

type summary struct {
	distance  float64
	nodes     int
	meanLinks float64
	peakLinks int
	visible   float64
}

func main() {
	cfg := config.NewConfig()
	cfg.Bind(flag.CommandLine)
	frames := flag.Int("frames", 600, "frames to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	seeds := flag.Int("seeds", 4, "seeds per parameter set")
	target := flag.Float64("target", 12, "desired mean links per frame")
	flag.Parse()
	if err := cfg.Load(); err != nil {
		log.Fatal(err)
	}
	if *workers < 1 {
		*workers = 1
	}

	size := core.Size{W: cfg.Width, H: cfg.Height}
	var sets []paramSet
	for distance := 90.0; distance <= 210; distance += 30 {
		for _, nodes := range []int{20, 30, 40} {
			for s := 0; s < *seeds; s++ {
				sets = append(sets, paramSet{distance: distance, nodes: nodes, seed: cfg.Engine.Seed + int64(s)})
			}
		}
	}

	fmt.Printf("Sweeping %d scenarios on %dx%d (%d workers, %d frames)\n", len(sets), size.W, size.H, *workers, *frames)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(cfg.Engine, size, params, *frames)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	type key struct {
		distance float64
		nodes    int
	}
	grouped := map[key]*summary{}
	counts := map[key]int{}
	for res := range results {
		k := key{res.params.distance, res.params.nodes}
		s, ok := grouped[k]
		if !ok {
			s = &summary{distance: k.distance, nodes: k.nodes}
			grouped[k] = s
		}
		s.meanLinks += res.density.MeanLinks
		s.visible += res.density.MeanVisible
		if res.density.PeakLinks > s.peakLinks {
			s.peakLinks = res.density.PeakLinks
		}
		counts[k]++
		if res.density.MeanVisible == 0 {
			fmt.Printf("No signal ever visible with %s\n", res.params)
		}
	}

	all := make([]summary, 0, len(grouped))
	for k, s := range grouped {
		s.meanLinks /= float64(counts[k])
		s.visible /= float64(counts[k])
		all = append(all, *s)
	}
	sort.Slice(all, func(i, j int) bool {
		return math.Abs(all[i].meanLinks-*target) < math.Abs(all[j].meanLinks-*target)
	})
	elapsed := time.Since(start)

	fmt.Printf("\nClosest to %.1f links per frame (elapsed %s):\n", *target, elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		s := all[i]
		fmt.Printf("%2d) distance=%.0f nodes=%d links=%.2f peak=%d visibleSignals=%.2f\n",
			i+1, s.distance, s.nodes, s.meanLinks, s.peakLinks, s.visible)
	}
}

func runScenario(base background.Config, size core.Size, params paramSet, frames int) scenarioResult {
	cfg := base
	cfg.ConnectionDistance = params.distance
	cfg.Nodes = params.nodes
	cfg.Seed = params.seed
	return scenarioResult{params: params, density: background.Measure(cfg, size, frames)}
}
