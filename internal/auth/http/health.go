package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/hibritu/hirehub/internal/auth/store"
	"github.com/hibritu/hirehub/pkg/authsdk"
	"github.com/hibritu/hirehub/pkg/httpx"
	"github.com/hibritu/hirehub/pkg/jwtx"
	"github.com/hibritu/hirehub/pkg/role"
	"github.com/hibritu/hirehub/pkg/slogx"
)

const readinessTimeout = 2 * time.Second

var errNoSigner = errors.New("no signer configured")

// LivezHandler godoc
//
//	@Summary		Liveness Check Endpoint
//	@Description	Liveness probe endpoint returning basic service status
//	@Description	This endpoint always returns 200 OK if the process is serving requests
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get]
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, healthBody("ok", startTime, version, nil))
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness Check Endpoint
//	@Description	Readiness probe endpoint returning service health status and checks for critical dependencies
//	@Description	Includes uptime, version, and the status of the database and the token signer
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	authsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	authsdk.HealthResponse	"status, uptime, version, checks - service not ready"
//	@Router			/readyz [get]
func ReadyzHandler(startTime time.Time, version string, st store.Store, signer jwtx.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()
		l := slogx.FromContext(ctx)

		checks := &authsdk.HealthChecks{Database: "ok", Signer: "ok"}

		if err := st.Ping(ctx); err != nil {
			l.Warn("readiness: database ping failed", "err", err)
			checks.Database = "error: database unreachable"
		}

		// A signer that cannot sign leaves login and refresh dead.
		if err := probeSigner(signer); err != nil {
			l.Warn("readiness: signer probe failed", "err", err)
			checks.Signer = "error: " + err.Error()
		}

		status, code := "ok", http.StatusOK
		if checks.Database != "ok" || checks.Signer != "ok" {
			status, code = "degraded", http.StatusServiceUnavailable
		}
		httpx.WriteJSON(w, code, healthBody(status, startTime, version, checks))
	}
}

func probeSigner(s jwtx.Signer) error {
	if s == nil {
		return errNoSigner
	}
	claims := jwtx.NewClaims(jwtx.Subject{ID: "readiness-probe", Role: role.JobSeeker},
		jwtx.TypeAccess, "readiness", time.Minute, time.Now())
	_, err := s.Sign(claims)
	return err
}

func healthBody(status string, startTime time.Time, version string, checks *authsdk.HealthChecks) authsdk.HealthResponse {
	return authsdk.HealthResponse{
		Status:  status,
		Uptime:  time.Since(startTime).Round(time.Second).String(),
		Version: version,
		Checks:  checks,
	}
}
