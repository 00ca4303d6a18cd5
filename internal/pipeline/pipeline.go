// Package pipeline normalizes extracted exam records concurrently.
package pipeline

import (
	"context"
	"runtime"
	"time"

	"github.com/pfrederiksen/exam-dates/internal/exam"
	"github.com/pfrederiksen/exam-dates/internal/logger"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes one conversion run.
type Stats struct {
	Records   int                   `json:"records"`
	Moments   int                   `json:"moments"`
	Unparsed  int                   `json:"unparsed"` // records with no moments
	Lines     map[exam.RuleKind]int `json:"lines"`
	Unmatched int                   `json:"unmatched_lines"`
	Duration  time.Duration         `json:"duration"`
}

// Convert parses and normalizes raws on up to workers goroutines. Output order
// equals input order. A workers value of zero or less uses GOMAXPROCS.
//
// When ctx is cancelled no further records are dispatched and ctx.Err() is
// returned.
func Convert(ctx context.Context, raws []exam.RawRecord, mode exam.Mode, workers int) ([]exam.Record, Stats, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	logger.SetGauge("convert_workers", float64(workers))
	started := time.Now()

	records := make([]exam.Record, len(raws))
	seqs := make([]exam.Sequence, len(raws))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range raws {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			seqs[i] = exam.ParseField(raws[i].DateText)
			records[i] = exam.NormalizeSequence(raws[i], seqs[i], mode)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}
	if err := ctx.Err(); err != nil {
		return nil, Stats{}, err
	}

	stats := summarize(raws, seqs)
	stats.Duration = time.Since(started)
	record(stats)

	return records, stats, nil
}

func summarize(raws []exam.RawRecord, seqs []exam.Sequence) Stats {
	stats := Stats{
		Records: len(seqs),
		Lines:   make(map[exam.RuleKind]int),
	}

	for i, seq := range seqs {
		stats.Moments += len(seq.Moments)
		if len(seq.Moments) == 0 {
			stats.Unparsed++
			logger.Debug("No dates recognized", logger.Fields{
				"course_code": raws[i].CourseCode,
				"exam_type":   raws[i].ExamType,
				"date_text":   raws[i].DateText,
			})
		}
		for _, line := range seq.Lines {
			if line.Rule == exam.RuleNone {
				stats.Unmatched++
				continue
			}
			stats.Lines[line.Rule]++
		}
	}

	return stats
}

// record feeds the run's counters into the default metrics tracker.
func record(stats Stats) {
	logger.AddCounter("records_converted", int64(stats.Records))
	logger.AddCounter("moments_parsed", int64(stats.Moments))
	logger.AddCounter("records_unparsed", int64(stats.Unparsed))
	logger.AddCounter("lines_unmatched", int64(stats.Unmatched))
	for kind, n := range stats.Lines {
		logger.AddCounter("lines_"+string(kind), int64(n))
	}
	logger.RecordTiming("convert_duration", stats.Duration)
}
