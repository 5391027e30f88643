// Package stubserver serves a local stand-in for the prediction service. It
// answers with the reference service's response shapes, classifying with
// predictor.Dummy.
package stubserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/idlab-discover/aqpredict-cli/internal/aqi"
	"github.com/idlab-discover/aqpredict-cli/internal/predictor"
)

// isoLayout matches the zone-less timestamps of the reference service.
const isoLayout = "2006-01-02T15:04:05.000000"

// maxBody bounds a /predict request body.
const maxBody = 1 << 20

// Config configures the stub router.
type Config struct {
	Logger zerolog.Logger
	// FailWith, when set, makes every /predict answer 500 with this message.
	FailWith string
	// Now is the clock; nil means time.Now.
	Now func() time.Time
}

type server struct {
	model    *predictor.Dummy
	failWith string
	now      func() time.Time
}

// NewRouter returns the stub service. Routes are served both at the root and
// under /api, where the reference service mounts them.
func NewRouter(cfg Config) *chi.Mux {
	s := &server{model: &predictor.Dummy{}, failWith: cfg.FailWith, now: cfg.Now}
	if s.now == nil {
		s.now = time.Now
	}
	s.model.Now = s.now

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(echoRequestID)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Group(s.routes)
	r.Route("/api", s.routes)
	return r
}

func (s *server) routes(r chi.Router) {
	r.Get(predictor.PathHealth, s.health)
	r.Post(predictor.PathPredict, s.predict)
	r.Get(predictor.PathModelInfo, s.modelInfo)
	r.Get(predictor.PathFeatures, s.features)
}

func (s *server) timestamp() string { return s.now().Format(isoLayout) }

func (s *server) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":       "healthy",
		"timestamp":    s.timestamp(),
		"model_loaded": true,
	})
}

func (s *server) modelInfo(w http.ResponseWriter, r *http.Request) {
	info, err := s.model.ModelInfo(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Model not loaded")
		return
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *server) features(w http.ResponseWriter, r *http.Request) {
	list, err := s.model.Features(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get features")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *server) predict(w http.ResponseWriter, r *http.Request) {
	if s.failWith != "" {
		writeError(w, http.StatusInternalServerError, s.failWith)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid input format: "+err.Error())
		return
	}

	var body map[string]any
	if len(strings.TrimSpace(string(data))) > 0 {
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.UseNumber()
		if err := dec.Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid input format: "+err.Error())
			return
		}
	}
	if len(body) == 0 {
		writeError(w, http.StatusBadRequest, "No input data provided")
		return
	}

	readings, msg := parseBody(body)
	if msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	pred, err := s.model.Predict(r.Context(), readings)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Prediction failed: "+err.Error())
		return
	}
	pred.Timestamp = s.timestamp()
	writeJSON(w, http.StatusOK, pred)
}

// parseBody checks that every reading is present and numeric, accepting
// numeric strings. A non-empty message describes the first problem found.
func parseBody(body map[string]any) (aqi.Readings, string) {
	var missing []string
	for _, name := range aqi.ReadingNames {
		if _, ok := body[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return aqi.Readings{}, "Missing required fields: " + strings.Join(missing, ", ")
	}

	var r aqi.Readings
	for _, name := range aqi.ReadingNames {
		v, err := toFloat(body[name])
		if err != nil {
			return aqi.Readings{}, "Invalid input format: " + err.Error()
		}
		r.Set(name, v)
	}
	return r, ""
}

func toFloat(v any) (float64, error) {
	switch t := v.(type) {
	case json.Number:
		return t.Float64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0, fmt.Errorf("could not convert string to float: %q", t)
		}
		return f, nil
	case bool:
		if t {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("float() argument must be a string or a number, not %T", v)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// ListenAndServe serves h on addr until ctx is done, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, log zerolog.Logger) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, h, log)
}

// Serve is ListenAndServe on an existing listener.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, log zerolog.Logger) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", ln.Addr().String()).Msg("stub server listening")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down stub server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info().Msg("stub server stopped")
	return nil
}
