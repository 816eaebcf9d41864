// Package server exposes a Converter over HTTP.
//
// GET / returns a fragment linking every document in the data root.
// GET /<name> converts <data root>/<name>.md on demand. Failures are answered
// with status 404 or 500 and the status number as the whole body.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-markd"
	"github.com/alnah/go-markd/internal/fileutil"
)

// DefaultShutdownTimeout bounds graceful shutdown after the context ends.
const DefaultShutdownTimeout = 5 * time.Second

// DocumentExt is appended to the request key to locate the source file.
const DocumentExt = ".md"

const contentType = "text/html"

// DocumentConverter converts the file at path into an HTML document.
type DocumentConverter interface {
	Convert(ctx context.Context, path string) (*markd.Document, error)
}

// Server routes requests to a DocumentConverter and a directory listing.
type Server struct {
	conv            DocumentConverter
	dataRoot        string
	logger          *slog.Logger
	shutdownTimeout time.Duration
	mux             *http.ServeMux
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger. Nil is ignored.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithShutdownTimeout overrides DefaultShutdownTimeout.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// New creates a Server serving documents from dataRoot.
func New(conv DocumentConverter, dataRoot string, opts ...Option) *Server {
	s := &Server{
		conv:            conv,
		dataRoot:        dataRoot,
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdownTimeout: DefaultShutdownTimeout,
		mux:             http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}

	// One catch-all route: the mux's own 404 would not follow the body policy.
	s.mux.HandleFunc("/", s.handle)
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// DataRoot returns the directory documents are read from.
func (s *Server) DataRoot() string {
	return s.dataRoot
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("Request", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

	w.Header().Set("Content-Type", contentType)

	key := strings.TrimPrefix(r.URL.Path, "/")
	if key == "" {
		s.serveListing(w)
		return
	}
	s.serveDocument(w, r, key)
}

func (s *Server) serveListing(w http.ResponseWriter) {
	listing, err := s.Listing()
	if err != nil {
		s.logger.Error("Listing failed", "data_dir", s.dataRoot, "error", err)
		writeStatus(w, http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, listing)
}

func (s *Server) serveDocument(w http.ResponseWriter, r *http.Request, key string) {
	path, err := s.documentPath(key)
	if err == nil {
		var doc *markd.Document
		doc, err = s.conv.Convert(r.Context(), path)
		if err == nil {
			w.WriteHeader(http.StatusOK)
			_, _ = io.WriteString(w, doc.HTML)
			return
		}
	}

	status := StatusFor(err)
	s.logger.Error("Conversion failed", "key", key, "status", status, "error", err)
	writeStatus(w, status)
}

// documentPath maps a request key to a file under the data root.
func (s *Server) documentPath(key string) (string, error) {
	if strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("%w: key %q leaves the data directory", markd.ErrUnsupported, key)
	}
	return filepath.Join(s.dataRoot, key+DocumentExt), nil
}

// Listing renders one link per non-hidden regular file in the data root,
// sorted by name, with the extension stripped. Subdirectories are omitted.
// Only the href is path-escaped; the link text is the raw name.
func (s *Server) Listing() (string, error) {
	entries, err := os.ReadDir(s.dataRoot)
	if err != nil {
		return "", fmt.Errorf("%w: listing %s: %v", markd.ErrIO, s.dataRoot, err)
	}

	var b strings.Builder
	for _, entry := range entries {
		if !entry.Type().IsRegular() || fileutil.IsHidden(entry.Name()) {
			continue
		}
		name := fileutil.StripExtension(entry.Name())
		b.WriteString(`<a href="`)
		b.WriteString(url.PathEscape(name))
		b.WriteString(`">`)
		b.WriteString(name)
		b.WriteString(`</a><br />`)
	}
	return b.String(), nil
}

// StatusFor maps a conversion error to an HTTP status.
// Missing and unsupported documents are 404; everything else is 500.
func StatusFor(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, markd.ErrNotFound), errors.Is(err, markd.ErrUnsupported):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeStatus answers with status and its number as the body.
func writeStatus(w http.ResponseWriter, status int) {
	w.WriteHeader(status)
	_, _ = io.WriteString(w, strconv.Itoa(status))
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the shutdown timeout. Requests are served concurrently.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Listening", "address", ln.Addr().String(), "data_dir", s.dataRoot)
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

	s.logger.Info("Stopping server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	<-errCh
	s.logger.Info("Server stopped")
	return nil
}
