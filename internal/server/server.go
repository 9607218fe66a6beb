// Package server wires the contact component, its assets and a health
// check into an http.Server with graceful shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/components/contactform"
	"github.com/goliatone/go-contactform/internal/config"
	"github.com/goliatone/go-contactform/pkg/renderers/vanilla"
)

// Server serves the contact form described by a Config.
type Server struct {
	cfg       *config.Config
	log       *zap.Logger
	handler   http.Handler
	formPath  string
	assetPath string
}

// New builds the routes. Extra options are applied after the ones derived
// from cfg, so callers can add an OnSubmit hook or a Guard.
func New(cfg *config.Config, logger *zap.Logger, fns ...contactform.OptionFn) (*Server, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	base := strings.TrimRight(cfg.Server.BasePath, "/")
	assetPath := base + "/assets/"

	rendererOpts := []vanilla.Option{}
	if cfg.Form.InlineStyles {
		rendererOpts = append(rendererOpts, vanilla.WithDefaultStyles())
	}
	if cfg.Form.Stylesheet != "" {
		rendererOpts = append(rendererOpts, vanilla.WithStylesheet(cfg.Form.Stylesheet))
	}
	if cfg.Form.TemplatesDir != "" {
		rendererOpts = append(rendererOpts, vanilla.WithTemplatesDir(cfg.Form.TemplatesDir))
	}
	renderer, err := vanilla.New(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	options := []contactform.OptionFn{
		contactform.WithRoutePath(cfg.Form.RoutePath),
		contactform.WithTitle(cfg.Form.Title),
		contactform.WithLiveValidation(cfg.Form.LiveValidation),
		contactform.WithTheme(cfg.RendererTheme()),
		contactform.WithRenderer(renderer),
		contactform.WithLogger(logger),
	}
	options = append(options, fns...)

	mux := http.NewServeMux()
	formPath, err := contactform.RegisterRoutes(mux, cfg.Server.BasePath, options...)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	mux.Handle(assetPath, http.StripPrefix(assetPath, http.FileServer(http.FS(vanilla.AssetsFS()))))
	mux.HandleFunc(base+"/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return &Server{
		cfg:       cfg,
		log:       logger,
		handler:   mux,
		formPath:  formPath,
		assetPath: assetPath,
	}, nil
}

// Handler exposes the routes for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// FormPath is the mount path of the contact form.
func (s *Server) FormPath() string {
	return s.formPath
}

// ListenAndServe listens on the configured address and serves until ctx is
// cancelled.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Server.Addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", s.cfg.Server.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// within the configured grace period.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info("contactform: listening",
		zap.String("addr", ln.Addr().String()),
		zap.String("form", s.formPath),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
	defer cancel()

	s.log.Info("contactform: shutting down", zap.Duration("grace", s.cfg.ShutdownTimeout()))
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
