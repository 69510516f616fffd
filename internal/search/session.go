// Package search implements the scoring driver and the worker-pool
// session that drives it across a seed space: atomic progress counters
// read concurrently by the API layer, a cancellable background
// goroutine, and a log line at the start and the end of each scan.
package search

import (
	"context"
	"log"
	"sync"
	"sync/atomic"

	"github.com/rawblock/seedscan/internal/filter"
	"github.com/rawblock/seedscan/internal/items"
	"github.com/rawblock/seedscan/internal/vector"
	"github.com/rawblock/seedscan/pkg/models"
)

// Session runs one query against a seed range. It is safe for concurrent
// reads of its progress fields while Run is in flight.
type Session struct {
	query   models.Query
	must    []filter.Node
	should  []filter.Node
	mustNot []filter.Node

	initialCutoff int64
	autoCutoff    bool

	learnedCutoff atomic.Int64
	seedsScanned  atomic.Int64
	resultsFound  atomic.Int64
	cancelled     atomic.Bool
}

// NewSession builds the filter tree once per query and reuses it across
// every seed batch.
func NewSession(query models.Query, cutoff int, autoCutoff bool) *Session {
	s := &Session{query: query, initialCutoff: int64(cutoff), autoCutoff: autoCutoff}
	s.learnedCutoff.Store(int64(cutoff))
	for _, c := range query.Must {
		s.must = append(s.must, filter.Build(c))
	}
	for _, c := range query.Should {
		s.should = append(s.should, filter.Build(c))
	}
	for _, c := range query.MustNot {
		s.mustNot = append(s.mustNot, filter.Build(c))
	}
	return s
}

// Progress is the snapshot the API/db layer polls.
type Progress struct {
	SeedsScanned  int64
	ResultsFound  int64
	LearnedCutoff int64
	Cancelled     bool
}

func (s *Session) Progress() Progress {
	return Progress{
		SeedsScanned:  s.seedsScanned.Load(),
		ResultsFound:  s.resultsFound.Load(),
		LearnedCutoff: s.learnedCutoff.Load(),
		Cancelled:     s.cancelled.Load(),
	}
}

// Cancel stops the session at the next batch boundary.
func (s *Session) Cancel() { s.cancelled.Store(true) }

// Run scans every seed in seeds using workerCount goroutines, partitioning
// the seed space into 8-lane batches. onResult is invoked once per
// accepted seed, from whichever worker goroutine found it; callers must
// make it safe for concurrent use.
func (s *Session) Run(ctx context.Context, seeds []string, workerCount int, onResult func(models.Tally)) {
	if workerCount < 1 {
		workerCount = 1
	}
	batches := partition(seeds, vector.LaneCount)

	work := make(chan []string)
	var wg sync.WaitGroup
	for w := 0; w < workerCount; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for batch := range work {
				if s.cancelled.Load() || ctx.Err() != nil {
					continue
				}
				s.runBatch(batch, onResult)
			}
		}()
	}

	log.Printf("[search] starting scan: %d seeds, %d workers, autoCutoff=%v", len(seeds), workerCount, s.autoCutoff)
feed:
	for _, batch := range batches {
		select {
		case <-ctx.Done():
			s.cancelled.Store(true)
			break feed
		case work <- batch:
		}
		if s.cancelled.Load() {
			break feed
		}
	}
	close(work)
	wg.Wait()
	log.Printf("[search] scan finished: %d scanned, %d found, cutoff=%d",
		s.seedsScanned.Load(), s.resultsFound.Load(), s.learnedCutoff.Load())
}

// partition splits seeds into groups of size n; the final group may be
// shorter. runBatch pads a short group by repeating its first real seed
// and masks the pad lanes off, so they never reach onResult.
func partition(seeds []string, n int) [][]string {
	var out [][]string
	for i := 0; i < len(seeds); i += n {
		end := i + n
		if end > len(seeds) {
			end = len(seeds)
		}
		out = append(out, seeds[i:end])
	}
	return out
}

func (s *Session) runBatch(batch []string, onResult func(models.Tally)) {
	var lanes [vector.LaneCount]string
	var real vector.Mask
	for i := 0; i < vector.LaneCount; i++ {
		if i < len(batch) {
			lanes[i] = batch[i]
			real = real.SetLane(i, true)
		} else if len(batch) > 0 {
			lanes[i] = batch[0] // pad lane, excluded below
		}
	}

	vc := items.NewVectorContext(lanes)

	mask := vector.AllBitsSet
	for _, node := range s.must {
		mask = mask.And(node.Eval(vc))
		if mask.AllFalse() {
			break
		}
	}
	mask = mask.And(real)
	if mask.AnyTrue() {
		var mustNotMask vector.Mask
		for _, node := range s.mustNot {
			mustNotMask = mustNotMask.Or(node.Eval(vc))
		}
		mask = mask.And(mustNotMask.Not())
	}

	s.seedsScanned.Add(int64(len(batch)))
	if mask.AllFalse() {
		return
	}

	shouldCounts := make([][vector.LaneCount]int, len(s.should))
	for i, node := range s.should {
		shouldCounts[i] = filter.CountOf(node, vc)
	}

	for _, lane := range mask.Lanes() {
		// Reloaded every lane rather than once per batch: autoCutoff can
		// raise the floor mid-loop, and a later lane in the same batch
		// must be judged against that newly-raised value, not the one in
		// effect when the batch started.
		cutoff := s.learnedCutoff.Load()
		score := 0
		perClause := make([]int, len(s.should))
		for i, c := range s.query.Should {
			n := shouldCounts[i][lane]
			perClause[i] = n
			score += c.Score * n
		}
		if int64(score) < cutoff {
			continue
		}
		s.resultsFound.Add(1)
		if s.autoCutoff {
			s.raiseCutoff(int64(score))
		}
		onResult(models.Tally{Seed: lanes[lane], Score: score, PerClauseCounts: perClause})
	}
}

// raiseCutoff monotonically raises the learned cutoff via CAS retry: the
// cutoff never decreases, even across concurrent writers.
func (s *Session) raiseCutoff(score int64) {
	for {
		cur := s.learnedCutoff.Load()
		if score <= cur {
			return
		}
		if s.learnedCutoff.CompareAndSwap(cur, score) {
			return
		}
	}
}
