package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rawblock/seedscan/pkg/models"
)

func TestCSVSinkWritesHeaderOnceThenRows(t *testing.T) {
	var buf bytes.Buffer
	sink := NewCSVSink(&buf)
	sink.Accept(models.Tally{Seed: "AAAAAAAA", Score: 10})
	sink.Accept(models.Tally{Seed: "AAAAAAAB", Score: 20})
	if err := sink.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3 (header + 2 rows): %q", len(lines), buf.String())
	}
	if lines[0] != "seed,score" {
		t.Fatalf("header = %q, want %q", lines[0], "seed,score")
	}
	if lines[1] != "AAAAAAAA,10" || lines[2] != "AAAAAAAB,20" {
		t.Fatalf("unexpected rows: %v", lines[1:])
	}
}

func TestChannelSinkDropsRatherThanBlocksWhenFull(t *testing.T) {
	sink := NewChannelSink(1)
	sink.Accept(models.Tally{Seed: "A"})
	// Buffer is now full; a second Accept must not block.
	done := make(chan struct{})
	go func() {
		sink.Accept(models.Tally{Seed: "B"})
		close(done)
	}()
	<-done

	first := <-sink.Results()
	if first.Seed != "A" {
		t.Fatalf("first result = %q, want %q", first.Seed, "A")
	}
}

func TestMultiSinkFansOutToEverySubSink(t *testing.T) {
	var bufA, bufB bytes.Buffer
	multi := NewMultiSink(NewCSVSink(&bufA), NewCSVSink(&bufB))
	multi.Accept(models.Tally{Seed: "X", Score: 1})
	if err := multi.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if !strings.Contains(bufA.String(), "X,1") || !strings.Contains(bufB.String(), "X,1") {
		t.Fatalf("expected both sub-sinks to receive the tally: a=%q b=%q", bufA.String(), bufB.String())
	}
}
