// Package static serves files of a directory over HTTP with caching disabled.
package static

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pelageech/staticserv/cachecontrol"
	"github.com/pelageech/staticserv/config"
	"github.com/pelageech/staticserv/metrics"
	"github.com/pelageech/staticserv/timer"
)

// TypeResolver picks the Content-Type of a regular file by its name.
type TypeResolver interface {
	TypeByName(name string) string
}

// Server is an http.Handler serving the files under its root.
type Server struct {
	root     http.Dir
	files    http.Handler
	types    TypeResolver
	finalize []cachecontrol.FinalizeFunc
	metrics  *metrics.Metrics
	logger   *log.Logger
}

// New is the constructor of the static server.
func New(
	cfg *config.ServerConfig,
	types TypeResolver,
	m *metrics.Metrics,
	logger *log.Logger,
) *Server {
	root := http.Dir(cfg.Root)
	return &Server{
		root:     root,
		files:    http.FileServer(root),
		types:    types,
		finalize: []cachecontrol.FinalizeFunc{cachecontrol.Enforce(cfg.CacheControl)},
		metrics:  m,
		logger:   logger,
	}
}

func (s *Server) ServeHTTP(rw http.ResponseWriter, req *http.Request) {
	s.metrics.RequestsNow.Inc()
	defer s.metrics.RequestsNow.Dec()

	w := cachecontrol.NewWriter(rw, s.finalize...)

	var took time.Duration
	err := timer.MakeRequestTimeTracker(s.serve, func(t time.Duration) {
		took = t
	}, true)(w, req)
	w.Finish()

	s.metrics.ObserveRequest(w.Status(), w.Written(), took)
	s.logRequest(req, w, took, err)
}

// serve resolves the path to classify it and leaves the response to http.FileServer.
// The error is returned only for the access log, the client already got the
// library's error page.
func (s *Server) serve(rw http.ResponseWriter, req *http.Request) error {
	name := cleanPath(req)

	info, err := s.resolve(name)
	if err == nil && info.Mode().IsRegular() && !strings.HasSuffix(req.URL.Path, "/") {
		rw.Header().Set("Content-Type", s.types.TypeByName(name))
	}

	s.files.ServeHTTP(rw, req)
	return err
}

// resolve opens name through http.Dir, which never leaves the root.
func (s *Server) resolve(name string) (fs.FileInfo, error) {
	f, err := s.root.Open(name)
	if err != nil {
		return nil, classify(name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, classify(name, err)
	}
	return info, nil
}

func classify(name string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: %w: %w", name, ErrNotFound, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%s: %w: %w", name, ErrForbidden, err)
	default:
		return fmt.Errorf("%s: %w", name, err)
	}
}

// the same normalization http.FileServer applies
func cleanPath(req *http.Request) string {
	upath := req.URL.Path
	if !strings.HasPrefix(upath, "/") {
		upath = "/" + upath
		req.URL.Path = upath
	}
	return path.Clean(upath)
}

func (s *Server) logRequest(req *http.Request, w *cachecontrol.Writer, took time.Duration, err error) {
	line := fmt.Sprintf("%q", req.Method+" "+req.URL.RequestURI()+" "+req.Proto)
	keyvals := []interface{}{
		"status", w.Status(),
		"bytes", w.Written(),
		"took", took,
		"remote", req.RemoteAddr,
		"id", uuid.NewString(),
	}

	if w.Status() >= http.StatusBadRequest {
		if err != nil {
			keyvals = append(keyvals, "err", err)
		}
		s.logger.Warn(line, keyvals...)
		return
	}
	s.logger.Info(line, keyvals...)
}
