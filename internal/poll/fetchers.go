package poll

import (
	"jobspy-engine/internal/config"
	"jobspy-engine/internal/ingest/adzuna"
	"jobspy-engine/internal/ingest/arbeitnow"
	"jobspy-engine/internal/ingest/jsearch"
	"jobspy-engine/internal/ingest/remotive"
	"jobspy-engine/internal/ingest/types"
	"jobspy-engine/internal/ingest/util"
	"jobspy-engine/internal/secrets"
)

// BuildFetchers constructs one client per source, sync order, sharing a
// single per-host limiter. Credentials resolve from env first, then the
// OS keychain.
func BuildFetchers(cfg config.Config) []types.Fetcher {
	limiter := util.NewHostLimiter(cfg.Sources.RatePerHost, cfg.Sources.RateBurst)

	return []types.Fetcher{
		remotive.New(limiter),
		arbeitnow.New(limiter),
		adzuna.New(adzuna.Credentials{
			AppID:  secrets.GetOptional(secrets.AdzunaAppID),
			AppKey: secrets.GetOptional(secrets.AdzunaAppKey),
		}, cfg.Sources.Adzuna.Country, cfg.Sources.Adzuna.ResultsPerPage, limiter),
		jsearch.New(secrets.GetOptional(secrets.JSearchKey), limiter),
	}
}
