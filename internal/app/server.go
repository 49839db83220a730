package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/vk/zmkgrid/internal/ctxlog"
	"github.com/vk/zmkgrid/internal/export"
	"github.com/vk/zmkgrid/internal/validate"
	"github.com/vk/zmkgrid/internal/zmk"
	"github.com/zclconf/go-cty/cty/gocty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// maxBodyBytes bounds keymap uploads.
const maxBodyBytes = 1 << 20

// routes builds the HTTP service handler.
func (a *App) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /bindings", a.bindingsHandler)
	mux.HandleFunc("POST /validate", a.validateHandler)
	mux.HandleFunc("POST /parse", a.parseHandler)
	return mux
}

// healthHandler answers liveness probes.
func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) bindingsHandler(w http.ResponseWriter, r *http.Request) {
	a.writeJSON(w, http.StatusOK, zmk.GetSupportedBindings())
}

func (a *App) validateHandler(w http.ResponseWriter, r *http.Request) {
	content, ok := a.readBody(w, r)
	if !ok {
		return
	}

	res := a.parser.Validate(content)
	val, err := gocty.ToCtyValue(res, validateResultType)
	if err == nil {
		var body []byte
		if body, err = ctyjson.Marshal(val, validateResultType); err == nil {
			a.writeRaw(w, http.StatusOK, body)
			return
		}
	}
	a.logger.Error("Failed to encode validation result.", "error", err)
	a.writeError(w, http.StatusInternalServerError, "failed to encode validation result")
}

func (a *App) parseHandler(w http.ResponseWriter, r *http.Request) {
	content, ok := a.readBody(w, r)
	if !ok {
		return
	}

	cfg, err := a.parser.Parse(content)
	if err != nil {
		a.logger.Debug("Parse request rejected.", "error", err)
		a.writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	body, err := export.JSONBytes(cfg)
	if err != nil {
		a.logger.Error("Failed to encode keymap.", "error", err)
		a.writeError(w, http.StatusInternalServerError, "failed to encode keymap")
		return
	}
	a.writeRaw(w, http.StatusOK, body)
}

func (a *App) readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			a.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return "", false
		}
		a.writeError(w, http.StatusBadRequest, "failed to read request body")
		return "", false
	}
	return string(body), true
}

func (a *App) writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		a.logger.Error("Failed to encode response.", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	a.writeRaw(w, status, body)
}

func (a *App) writeRaw(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (a *App) writeError(w http.ResponseWriter, status int, msg string) {
	a.writeJSON(w, status, map[string]string{"error": msg})
}

// startServer binds the HTTP service and serves it in the background. Bind
// failures are returned; later failures are logged.
func (a *App) startServer(ctx context.Context, port int) (*http.Server, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Configuring HTTP server.")

	addr := fmt.Sprintf(":%d", port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to start HTTP server on %s: %w", addr, err)
	}

	srv := &http.Server{
		Handler:           a.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("🩺 HTTP server starting", "address", fmt.Sprintf("http://localhost%s/health", addr))
		// Serve returns ErrServerClosed on graceful shutdown.
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server failed unexpectedly", "error", err)
		}
	}()
	return srv, nil
}

func (a *App) shutdownServer(ctx context.Context, srv *http.Server) {
	logger := ctxlog.FromContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	logger.Info("🩺 Shutting down HTTP server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
		return
	}
	logger.Debug("HTTP server shut down gracefully.")
}

var validateResultType, _ = gocty.ImpliedType(validate.Result{})
