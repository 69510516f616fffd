// Package report implements the result sinks a search session can feed:
// a CSV file for the CLI, a buffered channel for the HTTP/websocket
// layer, and a fan-out sink combining both.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sync"

	"github.com/rawblock/seedscan/pkg/models"
)

// Sink receives one Tally per accepted seed. Implementations must be safe
// for concurrent calls, since Session.Run invokes the callback from
// whichever worker goroutine found the result.
type Sink interface {
	Accept(models.Tally)
	Close() error
}

// CSVSink writes one row per result to an io.Writer using encoding/csv —
// no third-party CSV library appears anywhere in the retrieved example
// set, so this is the one ambient concern this engine serves from the
// standard library (see DESIGN.md).
type CSVSink struct {
	mu     sync.Mutex
	w      *csv.Writer
	header bool
}

func NewCSVSink(w io.Writer) *CSVSink {
	return &CSVSink{w: csv.NewWriter(w)}
}

func (s *CSVSink) Accept(t models.Tally) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.header {
		_ = s.w.Write([]string{"seed", "score"})
		s.header = true
	}
	_ = s.w.Write([]string{t.Seed, fmt.Sprintf("%d", t.Score)})
	s.w.Flush()
}

func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.w.Flush()
	return s.w.Error()
}

// ChannelSink forwards every tally onto a buffered channel, used by the
// API layer to stream results over a websocket as they're found.
type ChannelSink struct {
	ch chan models.Tally
}

func NewChannelSink(buffer int) *ChannelSink {
	return &ChannelSink{ch: make(chan models.Tally, buffer)}
}

func (s *ChannelSink) Accept(t models.Tally) {
	select {
	case s.ch <- t:
	default:
		// Drop rather than block the search worker when no consumer is
		// keeping up; the channel is a best-effort live feed, not a log.
	}
}

func (s *ChannelSink) Close() error {
	close(s.ch)
	return nil
}

func (s *ChannelSink) Results() <-chan models.Tally { return s.ch }

// MultiSink fans a single result out to every sub-sink.
type MultiSink struct{ sinks []Sink }

func NewMultiSink(sinks ...Sink) *MultiSink { return &MultiSink{sinks: sinks} }

func (m *MultiSink) Accept(t models.Tally) {
	for _, s := range m.sinks {
		s.Accept(t)
	}
}

func (m *MultiSink) Close() error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
