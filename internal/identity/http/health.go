package http

import (
	"context"
	"net/http"
	"time"

	"github.com/aussiebroadwan/tweetbook/pkg/authsdk"
	"github.com/aussiebroadwan/tweetbook/pkg/httpx"
	"github.com/aussiebroadwan/tweetbook/pkg/jwtx"
)

func health(status string, started time.Time, version string) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(started).Truncate(time.Second).String(),
		Version: version,
	}
}

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving requests. No dependencies are checked.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(started time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, health("ok", started, version))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Pings the database and, when it is a separate backend, the refresh token ledger.
//	@Description	Any failing check marks the service degraded and answers 503.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"every check passed"
//	@Failure		503	{object}	authsdk.HealthResponse	"at least one check failed"
//	@Router			/readyz [get].
func ReadyzHandler(
	started time.Time,
	version string,
	database, ledger Pinger,
	verifier jwtx.Verifier,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &authsdk.HealthChecks{
			Database: probe(r.Context(), database),
			Ledger:   "ok",
			Signer:   "ok",
		}
		if ledger != nil {
			checks.Ledger = probe(r.Context(), ledger)
		}
		if verifier == nil {
			checks.Signer = "error: no signing key loaded"
		}

		resp := health("ok", started, version)
		resp.Checks = checks

		status := http.StatusOK
		for _, c := range []string{checks.Database, checks.Ledger, checks.Signer} {
			if c != "ok" {
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
			}
		}
		httpx.WriteJSON(w, status, resp)
	}
}

func probe(ctx context.Context, p Pinger) string {
	if err := p.Ping(ctx); err != nil {
		return "error: " + err.Error()
	}
	return "ok"
}
