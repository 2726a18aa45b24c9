// Package httpapi exposes the one-shot advisor over JSON HTTP for overlay
// shells that cannot speak gRPC.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ppiankov/safeharbor/internal/logging"
	"github.com/ppiankov/safeharbor/internal/metrics"
	"github.com/ppiankov/safeharbor/internal/model"
	"github.com/ppiankov/safeharbor/internal/service"
)

type api struct {
	svc    *service.Service
	logger *slog.Logger
}

type askBody struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

type checkFieldBody struct {
	URL   string                `json:"url"`
	Field model.FieldDescriptor `json:"field"`
}

type errorBody struct {
	Error string `json:"error"`
}

// NewHandler creates the HTTP handler. m and logger may be nil.
func NewHandler(svc *service.Service, m *metrics.Metrics, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = logging.NewNop()
	}
	a := &api{svc: svc, logger: logger}

	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", m.Handler())

	r.Route("/v1", func(r chi.Router) {
		r.Get("/classify", a.classifyQuery)
		r.Post("/classify", a.classifyJSON)
		r.Post("/ask", a.ask)
		r.Post("/check-field", a.checkField)
		r.Get("/suggest", a.suggest)
	})
	return enableCORS(r)
}

func (a *api) classifyQuery(w http.ResponseWriter, r *http.Request) {
	a.classify(w, r.URL.Query().Get("url"))
}

func (a *api) classifyJSON(w http.ResponseWriter, r *http.Request) {
	var body struct {
		URL string `json:"url"`
	}
	if !a.decode(w, r, &body) {
		return
	}
	a.classify(w, body.URL)
}

func (a *api) classify(w http.ResponseWriter, rawURL string) {
	v, err := a.svc.Classify(rawURL)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.write(w, http.StatusOK, v)
}

func (a *api) ask(w http.ResponseWriter, r *http.Request) {
	var body askBody
	if !a.decode(w, r, &body) {
		return
	}
	ans, err := a.svc.Ask(body.Text, body.URL)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.write(w, http.StatusOK, ans)
}

func (a *api) checkField(w http.ResponseWriter, r *http.Request) {
	var body checkFieldBody
	if !a.decode(w, r, &body) {
		return
	}
	fc, err := a.svc.CheckField(body.URL, body.Field)
	if err != nil {
		a.fail(w, err)
		return
	}
	a.write(w, http.StatusOK, fc)
}

func (a *api) suggest(w http.ResponseWriter, r *http.Request) {
	a.write(w, http.StatusOK, map[string]any{"suggestions": a.svc.Suggest(r.URL.Query().Get("q"))})
}

func (a *api) decode(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		a.logger.Warn("invalid request body", "path", r.URL.Path, "error", err)
		a.write(w, http.StatusBadRequest, errorBody{Error: "invalid request body"})
		return false
	}
	return true
}

func (a *api) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, service.ErrEmptyURL) || errors.Is(err, service.ErrEmptyText) {
		a.write(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}
	a.logger.Error("request failed", "error", err)
	a.write(w, http.StatusInternalServerError, errorBody{Error: err.Error()})
}

func (a *api) write(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		a.logger.Error("response encode failed", "error", err)
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}
