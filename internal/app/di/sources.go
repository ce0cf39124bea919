// Package di provides dependency injection factories for creating application components.
package di

import (
	ingestusecase "quant_backend/internal/feature/ingest/usecase"
	"quant_backend/internal/platform/externalapi/frankfurter"
	"quant_backend/internal/platform/externalapi/fred"
	"quant_backend/internal/platform/externalapi/stooq"
	infrahttp "quant_backend/internal/platform/http"
)

// NewSources creates the configured source adapters, one per provider,
// each with its own HTTP client. Configuration comes from environment
// variables; no process-wide mutable state.
func NewSources() []ingestusecase.SourceRepository {
	stooqCfg := stooq.LoadConfig()
	fredCfg := fred.LoadConfig()
	fxCfg := frankfurter.LoadConfig()

	return []ingestusecase.SourceRepository{
		stooq.NewStooqSource(stooqCfg, infrahttp.NewHTTPClient(stooqCfg.Timeout)),
		fred.NewFredSource(fredCfg, infrahttp.NewHTTPClient(fredCfg.Timeout)),
		frankfurter.NewFrankfurterSource(fxCfg, infrahttp.NewHTTPClient(fxCfg.Timeout)),
	}
}
