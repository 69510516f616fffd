package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/tailscale/hujson"

	"github.com/rawblock/seedscan/internal/clause"
	"github.com/rawblock/seedscan/internal/report"
	"github.com/rawblock/seedscan/internal/search"
	"github.com/rawblock/seedscan/internal/validate"
	"github.com/rawblock/seedscan/pkg/models"
)

var (
	runQueryPath  string
	runSeedStart  uint64
	runSeedEnd    uint64
	runThreads    int
	runCutoff     int
	runAutoCutoff bool
	runOutPath    string
)

func init() {
	runCmd.Flags().StringVar(&runQueryPath, "query", "", "path to a query JSON document (required)")
	runCmd.Flags().Uint64Var(&runSeedStart, "seed-start", 0, "first seed index to scan (inclusive)")
	runCmd.Flags().Uint64Var(&runSeedEnd, "seed-end", 1_000_000, "last seed index to scan (exclusive)")
	runCmd.Flags().IntVar(&runThreads, "threads", runtime.NumCPU(), "number of worker goroutines")
	runCmd.Flags().IntVar(&runCutoff, "cutoff", 0, "minimum should-score a seed must reach to be reported")
	runCmd.Flags().BoolVar(&runAutoCutoff, "auto-cutoff", false, "raise the cutoff to the best score seen so far as the scan progresses")
	runCmd.Flags().StringVar(&runOutPath, "out", "", "CSV file to write results to (defaults to stdout)")
	runCmd.MarkFlagRequired("query")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a seed search over a range and report matching seeds",
	Run:   runRunCommand,
}

func runRunCommand(_ *cobra.Command, _ []string) {
	raw, err := loadQuery(runQueryPath)
	if err != nil {
		log.Fatalf("failed to load query: %v", err)
	}

	q, errs := clause.NormalizeQuery(raw)
	if len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		log.Fatalf("query normalization failed with %d error(s)", len(errs))
	}
	for _, issue := range validate.Query(q) {
		fmt.Fprintln(os.Stderr, issue.String())
	}

	var out *os.File
	if runOutPath == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(runOutPath)
		if err != nil {
			log.Fatalf("failed to create output file: %v", err)
		}
		defer out.Close()
	}
	sink := report.NewCSVSink(out)
	defer sink.Close()

	session := search.NewSession(q, runCutoff, runAutoCutoff)
	seeds := search.EnumerateSeeds(runSeedStart, runSeedEnd)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Println("interrupt received, stopping scan")
		session.Cancel()
		cancel()
	}()

	start := time.Now()
	session.Run(ctx, seeds, runThreads, func(t models.Tally) {
		sink.Accept(t)
	})

	progress := session.Progress()
	log.Printf("scan complete in %s: %d seeds scanned, %d results found, learned cutoff %d",
		time.Since(start), progress.SeedsScanned, progress.ResultsFound, progress.LearnedCutoff)
}

// loadQuery reads a query document, tolerating // comments and trailing
// commas (hujson.Standardize reduces either to plain JSON) before
// unmarshaling.
func loadQuery(path string) (models.RawQuery, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.RawQuery{}, err
	}
	data, err = hujson.Standardize(data)
	if err != nil {
		return models.RawQuery{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	var raw models.RawQuery
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.RawQuery{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return raw, nil
}
