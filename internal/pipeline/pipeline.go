// Package pipeline orchestrates one ingestion run: select candidates,
// then per memo transcribe, summarize, persist and cross-link. Memos
// are processed strictly one at a time; a failure isolates to its memo
// and the run continues.
package pipeline

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/starford/ansuz/internal/ai"
	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/dailylog"
	"github.com/starford/ansuz/internal/dedup"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/note"
	"github.com/starford/ansuz/internal/selector"
)

// Pipeline wires the per-run collaborators together.
type Pipeline struct {
	selector    *selector.Selector
	transcriber ai.Transcriber
	summarizer  ai.Summarizer
	writer      *note.Writer
	merger      *dailylog.Merger
	processed   *dedup.ProcessedSet
	logger      *slog.Logger
	now         func() time.Time

	// OnOutcome, when set, observes each memo's terminal state as it
	// happens (used for live event broadcasting).
	OnOutcome func(models.MemoOutcome)
}

// New assembles a Pipeline.
func New(sel *selector.Selector, tr ai.Transcriber, sm ai.Summarizer, w *note.Writer, m *dailylog.Merger, processed *dedup.ProcessedSet, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		selector:    sel,
		transcriber: tr,
		summarizer:  sm,
		writer:      w,
		merger:      m,
		processed:   processed,
		logger:      logger,
		now:         time.Now,
	}
}

// Run performs one ingestion pass and reports every memo's outcome.
// The returned error covers run-level problems only (an unreadable
// source directory); per-memo failures live in the report.
func (p *Pipeline) Run(ctx context.Context) (models.RunReport, error) {
	report := models.RunReport{Started: p.now()}

	memos, err := p.selector.Select(p.processed)
	if err != nil {
		report.Finished = p.now()
		return report, apperr.Tag(apperr.ErrPersistence, err)
	}

	if len(memos) == 0 {
		p.logger.Info("no new memos to process")
		report.Finished = p.now()
		return report, nil
	}
	p.logger.Info("processing memos", slog.Int("count", len(memos)))

	for _, memo := range memos {
		outcome := p.processMemo(ctx, memo)
		report.Outcomes = append(report.Outcomes, outcome)
		if p.OnOutcome != nil {
			p.OnOutcome(outcome)
		}
	}

	ingested, skipped, failed := report.Counts()
	p.logger.Info("run complete",
		slog.Int("ingested", ingested),
		slog.Int("skipped", skipped),
		slog.Int("failed", failed))

	report.Finished = p.now()
	return report, nil
}

// processMemo walks one memo through transcribe, summarize, persist
// and link. Only a fully linked memo gets its fingerprint added to the
// processed set; failed and skipped memos stay eligible for retry.
func (p *Pipeline) processMemo(ctx context.Context, memo models.MemoFile) models.MemoOutcome {
	outcome := models.MemoOutcome{Source: memo.Name, ProcessedAt: p.now()}
	log := p.logger.With(slog.String("memo", memo.Name))

	transcript, err := p.transcribe(ctx, memo)
	if err != nil {
		return p.fail(log, outcome, apperr.Tag(apperr.ErrServiceCall, err))
	}
	if strings.TrimSpace(transcript) == "" {
		// Empty transcription is a policy skip, not a failure: no note,
		// no audio copy, no fingerprint.
		log.Info("empty transcription, skipping")
		outcome.Status = models.StatusSkipped
		return outcome
	}

	summary, err := p.summarizer.Summarize(ctx, transcript)
	if err != nil {
		return p.fail(log, outcome, apperr.Tag(apperr.ErrServiceCall, err))
	}

	audioRel, err := p.writer.CopyAudio(memo, summary.FilenameSummary)
	if err != nil {
		return p.fail(log, outcome, apperr.Tag(apperr.ErrPersistence, err))
	}
	outcome.AttachmentPath = audioRel

	noteRel, err := p.writer.WriteNote(memo, summary, transcript, audioRel)
	if err != nil {
		return p.fail(log, outcome, apperr.Tag(apperr.ErrPersistence, err))
	}
	outcome.NotePath = noteRel

	logRel, err := p.merger.Append(memo.CreatedAt, noteRel)
	if err != nil {
		return p.fail(log, outcome, apperr.Tag(apperr.ErrPersistence, err))
	}
	outcome.DailyLogPath = logRel

	p.processed.Add(memo.Fingerprint)
	outcome.Status = models.StatusIngested
	log.Info("memo ingested", slog.String("note", noteRel))
	return outcome
}

// transcribe opens the memo file and runs it through the transcriber.
func (p *Pipeline) transcribe(ctx context.Context, memo models.MemoFile) (string, error) {
	f, err := os.Open(memo.Path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return p.transcriber.Transcribe(ctx, f, memo.Name)
}

func (p *Pipeline) fail(log *slog.Logger, outcome models.MemoOutcome, err error) models.MemoOutcome {
	log.Error("memo failed", slog.String("error", err.Error()))
	outcome.Status = models.StatusFailed
	outcome.Err = err
	return outcome
}
