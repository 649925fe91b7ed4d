package httpx

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/siteglow/trafficlens/internal/query"
	"github.com/siteglow/trafficlens/internal/traffic"
	"github.com/siteglow/trafficlens/internal/utils"
)

const msgYearWeek = "Year and week are required parameters"

func NewRouter(log *slog.Logger, svc *traffic.Service) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))
	mux.Use(utils.Metrics)

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ready")) })
	mux.Handle("/metrics", promhttp.Handler())

	mux.Route("/sites/{siteID}/paid-traffic", func(r chi.Router) {
		r.Get("/type-channel", handleDimension(log, svc, query.TypeChannel))
		r.Get("/campaign-device", handleDimension(log, svc, query.CampaignDevice))
		r.Get("/campaign-url", handleDimension(log, svc, query.CampaignURL))
		r.Get("/campaign", handleDimension(log, svc, query.Campaign))
	})

	return mux
}

func handleDimension(log *slog.Logger, svc *traffic.Service, dim query.Dimension) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		year, errY := strconv.Atoi(q.Get("year"))
		week, errW := strconv.Atoi(q.Get("week"))
		if q.Get("year") == "" || q.Get("week") == "" || errY != nil || errW != nil {
			writeError(w, http.StatusBadRequest, msgYearWeek)
			return
		}

		filters := map[string]string{}
		for param, col := range dim.FilterParams {
			if v := q.Get(param); v != "" {
				filters[col] = v
			}
		}

		res, err := svc.Fetch(r.Context(), traffic.Request{
			SiteID:    chi.URLParam(r, "siteID"),
			Year:      year,
			Week:      week,
			Dimension: dim,
			Filters:   filters,
			Limit:     atoiDef(q.Get("limit"), 0),
		})
		if err != nil {
			status, msg := statusFor(err)
			if status == http.StatusInternalServerError {
				log.Error("paid-traffic request failed", slog.String("rid", utils.RID(r.Context())), slog.String("err", err.Error()))
			}
			writeError(w, status, msg)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Encoding", "gzip")
		w.WriteHeader(http.StatusOK)
		if res.Stream != nil {
			defer res.Stream.Close()
			if _, err := io.Copy(w, res.Stream); err != nil {
				log.Warn("cache stream interrupted", slog.String("key", res.Key), slog.String("err", err.Error()))
			}
			return
		}
		w.Write(res.Body)
	}
}

func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, traffic.ErrBadRequest):
		return http.StatusBadRequest, msgYearWeek
	case errors.Is(err, traffic.ErrSiteNotFound):
		return http.StatusNotFound, "Site not found"
	case errors.Is(err, traffic.ErrForbidden):
		return http.StatusForbidden, "Access denied"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

func atoiDef(s string, d int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return d
	}
	return v
}
