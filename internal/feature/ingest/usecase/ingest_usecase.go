// Package usecase implements the ingestion pipeline:
// fetch → normalize → load, one strictly sequential pipeline per series,
// multiple series concurrently under a configured limit.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"quant_backend/internal/feature/ingest/domain"
	"quant_backend/internal/feature/ingest/domain/entity"
	tsentity "quant_backend/internal/feature/timeseries/domain/entity"
	"quant_backend/internal/shared/ratelimiter"
)

const (
	defaultConcurrency = 4
	defaultMaxRetries  = 3
	defaultRetryBase   = 500 * time.Millisecond
)

// SourceRepository は1つのデータプロバイダから生レコードを取得するリポジトリの
// インターフェイスです。外部 API の実装を抽象化します。
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type SourceRepository interface {
	// Provider returns the provider code this source serves.
	Provider() string
	// FetchSeries returns raw records for symbol over [from, to] in
	// provider-native order. Adapters never write to the store.
	FetchSeries(ctx context.Context, symbol string, from, to time.Time) ([]entity.RawRecord, error)
}

// SeriesStore abstracts series registration for the pipeline.
type SeriesStore interface {
	Ensure(ctx context.Context, s tsentity.Series) (tsentity.Series, error)
}

// ObservationLoader abstracts the upsert loader for the pipeline.
type ObservationLoader interface {
	Load(ctx context.Context, seriesID uint, obs []tsentity.Observation, policy tsentity.LoadPolicy) (tsentity.LoadSummary, error)
}

// RunRecorder abstracts the append-only ingest audit trail.
type RunRecorder interface {
	Begin(ctx context.Context, run tsentity.IngestRun) (uint, error)
	Finish(ctx context.Context, run tsentity.IngestRun) error
}

// Options はパイプラインの調整パラメータです。ゼロ値はデフォルトに置き換えられます。
type Options struct {
	Policy      tsentity.LoadPolicy // default fail-fast
	Concurrency int                 // 同時に実行するシリーズパイプライン数の上限
	MaxRetries  int                 // 一時的エラーに対する再試行回数の上限
	RetryBase   time.Duration       // 指数バックオフの初期待機時間
}

// SeriesResult is the per-series outcome of one Run.
type SeriesResult struct {
	Descriptor entity.SeriesDescriptor
	RunID      uint
	Fetched    int
	Summary    tsentity.LoadSummary
	Err        error
}

// IngestUsecase は外部APIからデータを取得し、正規化してストアに永続化する
// ユースケースを定義します。
type IngestUsecase struct {
	sources map[string]SourceRepository
	series  SeriesStore
	loader  ObservationLoader
	runs    RunRecorder
	rl      ratelimiter.RateLimiterInterface
	opts    Options
}

// NewIngestUsecase は新しい IngestUsecase を作成します。
func NewIngestUsecase(sources []SourceRepository, series SeriesStore, loader ObservationLoader,
	runs RunRecorder, rl ratelimiter.RateLimiterInterface, opts Options) *IngestUsecase {
	if opts.Policy == "" {
		opts.Policy = tsentity.PolicyFailFast
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = defaultMaxRetries
	}
	if opts.RetryBase <= 0 {
		opts.RetryBase = defaultRetryBase
	}
	m := make(map[string]SourceRepository, len(sources))
	for _, s := range sources {
		m[s.Provider()] = s
	}
	return &IngestUsecase{sources: m, series: series, loader: loader, runs: runs, rl: rl, opts: opts}
}

// Run executes one pipeline per descriptor over [from, to]. Pipelines run
// concurrently up to the configured limit; a failed series does not stop the
// others. The returned error is an aggregate ("n of m series failed");
// per-series detail is in the results.
//
// キャンセル時は実行中のフェッチのみ破棄され、コミット済みのシリーズは
// コミットされたまま残ります（シリーズ間のロールバックは行いません）。
func (iu *IngestUsecase) Run(ctx context.Context, descs []entity.SeriesDescriptor, from, to time.Time) ([]SeriesResult, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: %s after %s",
			domain.ErrInvalidRange, from.Format("2006-01-02"), to.Format("2006-01-02"))
	}

	results := make([]SeriesResult, len(descs))
	var g errgroup.Group
	g.SetLimit(iu.opts.Concurrency)
	for i, d := range descs {
		i, d := i, d
		g.Go(func() error {
			results[i] = iu.ingestOne(ctx, d, from, to)
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d series failed", failed, len(descs))
	}
	return results, nil
}

// ingestOne runs fetch → normalize → load for one series and records the
// attempt in the audit trail. Every started attempt gets a finalized
// IngestRun row, success or failure.
func (iu *IngestUsecase) ingestOne(ctx context.Context, desc entity.SeriesDescriptor, from, to time.Time) SeriesResult {
	res := SeriesResult{Descriptor: desc}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	started := time.Now().UTC()
	runID, err := iu.runs.Begin(ctx, tsentity.IngestRun{
		Provider:   desc.Provider,
		Symbol:     desc.Symbol,
		RangeStart: from,
		RangeEnd:   to,
		StartedAt:  started,
	})
	if err != nil {
		res.Err = fmt.Errorf("begin run: %w", err)
		return res
	}
	res.RunID = runID

	res.Fetched, res.Summary, res.Err = iu.pipeline(ctx, desc, from, to)

	run := tsentity.IngestRun{
		ID:         runID,
		Fetched:    res.Fetched,
		Inserted:   res.Summary.Inserted,
		Updated:    res.Summary.Updated,
		Unchanged:  res.Summary.Unchanged,
		Rejected:   len(res.Summary.Rejected),
		Status:     tsentity.RunSucceeded,
		FinishedAt: time.Now().UTC(),
	}
	if res.Err != nil {
		run.Status = tsentity.RunFailed
		run.Error = res.Err.Error()
		slog.Error("failed to ingest series",
			"provider", desc.Provider, "symbol", desc.Symbol, "error", res.Err)
	}
	// パイプラインがキャンセルで失敗した場合でも監査行は確定させる
	if err := iu.runs.Finish(context.WithoutCancel(ctx), run); err != nil {
		slog.Error("failed to finalize ingest run", "run_id", runID, "error", err)
	}
	return res
}

func (iu *IngestUsecase) pipeline(ctx context.Context, desc entity.SeriesDescriptor, from, to time.Time) (int, tsentity.LoadSummary, error) {
	src, ok := iu.sources[desc.Provider]
	if !ok {
		return 0, tsentity.LoadSummary{}, fmt.Errorf("no source adapter for provider %q", desc.Provider)
	}

	raw, err := iu.fetchWithRetry(ctx, src, desc.Symbol, from, to)
	if err != nil {
		return 0, tsentity.LoadSummary{}, err
	}

	s, err := iu.series.Ensure(ctx, tsentity.Series{
		Provider:   desc.Provider,
		Symbol:     desc.Symbol,
		AssetClass: desc.AssetClass,
		Frequency:  desc.Frequency,
	})
	if err != nil {
		return len(raw), tsentity.LoadSummary{}, err
	}

	obs, err := Normalize(raw, desc.Frequency, from, to)
	if err != nil {
		return len(raw), tsentity.LoadSummary{}, err
	}

	sum, err := iu.loader.Load(ctx, s.ID, obs, iu.opts.Policy)
	if err != nil {
		return len(raw), tsentity.LoadSummary{}, err
	}
	return len(raw), sum, nil
}

// fetchWithRetry retries transient source failures with exponential backoff.
// Permanent failures (unknown symbol) propagate immediately.
func (iu *IngestUsecase) fetchWithRetry(ctx context.Context, src SourceRepository, symbol string, from, to time.Time) ([]entity.RawRecord, error) {
	var lastErr error
	backoff := iu.opts.RetryBase
	for attempt := 0; attempt <= iu.opts.MaxRetries; attempt++ {
		if attempt > 0 {
			slog.Info("retrying fetch",
				"provider", src.Provider(), "symbol", symbol, "attempt", attempt, "backoff", backoff)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
			backoff *= 2
		}

		iu.rl.WaitIfNeeded()
		raw, err := src.FetchSeries(ctx, symbol, from, to)
		if err == nil {
			return raw, nil
		}
		if !errors.Is(err, domain.ErrSourceUnavailable) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("fetch failed after %d retries: %w", iu.opts.MaxRetries, lastErr)
}
