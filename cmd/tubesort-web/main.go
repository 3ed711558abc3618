package main

import (
	"flag"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	httpadapter "svw.info/tubesort/internal/adapters/http"
	"svw.info/tubesort/internal/generator"
	"svw.info/tubesort/internal/hint"
	"svw.info/tubesort/internal/infrastructure/storage"
	"svw.info/tubesort/internal/solver"
	"svw.info/tubesort/internal/tiers"
	"svw.info/tubesort/internal/usecase"
	"svw.info/tubesort/internal/validator"
)

// statusWriter captures HTTP status and bytes written.
type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// requestLogger logs method, path, status, bytes, and duration in a human-readable format.
func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		dur := time.Since(start)
		logger.Info("http",
			"method", r.Method,
			"path", r.URL.Path,
			"status", sw.status,
			"bytes", sw.bytes,
			"dur", dur.Round(time.Millisecond),
		)
	})
}

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	persist := flag.String("persist-path", "./data", "save directory")
	levelStr := flag.String("log-level", "info", "debug|info|warn|error")
	tiersPath := flag.String("tiers-path", "", "optional YAML tier table overriding the built-in progression")
	ceiling := flag.Int("solver-ceiling", solver.DefaultCeiling, "visited-state ceiling for /api/solve")
	flag.Parse()

	lvl := slog.LevelInfo
	switch strings.ToLower(*levelStr) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl}))
	_ = os.MkdirAll(*persist, 0o755)

	table := tiers.Default()
	if *tiersPath != "" {
		t, err := tiers.LoadFile(*tiersPath)
		if err != nil {
			logger.Error("tier table", "path", *tiersPath, "err", err)
			os.Exit(1)
		}
		table = t
	}

	// Wire providers → use cases → HTTP adapter
	s := solver.NewBFSSolver()
	s.Ceiling = *ceiling
	g := generator.NewTubeGenerator(table)
	v := validator.New()
	st := storage.NewFS(*persist)
	hin := hint.NewFirstMove()
	uc := usecase.NewService(s, g, v, hin, st)
	h := httpadapter.New(uc)

	mux := http.NewServeMux()
	h.Register(mux)

	srv := &http.Server{
		Addr:              *addr,
		Handler:           requestLogger(logger, mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	logger.Info("listening", "addr", *addr, "persist", *persist, "ceiling", *ceiling)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
