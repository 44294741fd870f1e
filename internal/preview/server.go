// Package preview serves a live-reloading render of the budget report for
// template editing. It polls the template file for changes, re-renders on
// every change, and accepts two line commands on its input: "r" (optionally
// "r <port>") restarts the HTTP server and "q" quits.
package preview

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"budgetmail/internal/core"
	"budgetmail/internal/log"
	"budgetmail/internal/report"
)

const pollInterval = 500 * time.Millisecond

// Server renders one fixed summary against an on-disk template and serves
// the result over HTTP.
type Server struct {
	summary      core.Summary
	templatePath string
	outputPath   string
	port         int
	logger       *log.Logger

	restart chan int

	mu   sync.RWMutex
	html []byte
}

func New(summary core.Summary, templatePath, outputPath string, port int, logger *log.Logger) *Server {
	return &Server{
		summary:      summary,
		templatePath: templatePath,
		outputPath:   outputPath,
		port:         port,
		logger:       logger.WithComponent(log.ComponentPreview),
		restart:      make(chan int),
	}
}

// Run renders once, then runs the watch, command, and serve loops until the
// context is cancelled or a "q" command arrives. The initial render must
// succeed; later render failures only log and keep the last good output.
func (s *Server) Run(ctx context.Context, input io.Reader) error {
	if err := s.render(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return s.watch(ctx) })
	g.Go(func() error { return s.listenCommands(ctx, cancel, input) })
	g.Go(func() error { return s.serve(ctx) })

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) render() error {
	renderer, err := report.NewFromFile(s.templatePath)
	if err != nil {
		return err
	}
	html, err := renderer.Render(s.summary, time.Now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.html = []byte(html)
	s.mu.Unlock()

	if s.outputPath != "" {
		if err := os.WriteFile(s.outputPath, []byte(html), 0644); err != nil {
			return fmt.Errorf("write %q: %w", s.outputPath, err)
		}
	}
	return nil
}

// watch polls the template file's mtime and re-renders on change. A broken
// edit keeps the previous render visible instead of blanking the page.
func (s *Server) watch(ctx context.Context) error {
	var lastMod time.Time
	if info, err := os.Stat(s.templatePath); err == nil {
		lastMod = info.ModTime()
	}

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			info, err := os.Stat(s.templatePath)
			if err != nil {
				s.logger.WarnContext(ctx, "Cannot stat template", log.FieldError, err.Error())
				continue
			}
			if info.ModTime().Equal(lastMod) {
				continue
			}
			lastMod = info.ModTime()
			if err := s.render(); err != nil {
				s.logger.WarnContext(ctx, "Re-render failed, keeping last output", log.FieldError, err.Error())
				continue
			}
			s.logger.InfoContext(ctx, "Template changed, re-rendered", "template", s.templatePath)
		}
	}
}

func (s *Server) listenCommands(ctx context.Context, cancel context.CancelFunc, input io.Reader) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(input)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				// Input closed (e.g. piped stdin); keep serving until the
				// context ends.
				<-ctx.Done()
				return ctx.Err()
			}
			fields := strings.Fields(strings.ToLower(line))
			if len(fields) == 0 {
				continue
			}
			switch fields[0] {
			case "q":
				s.logger.Info("Quit requested")
				cancel()
				return nil
			case "r":
				port := s.port
				if len(fields) > 1 {
					p, err := strconv.Atoi(fields[1])
					if err != nil {
						s.logger.Warn("Ignoring invalid port", log.FieldPort, fields[1])
						continue
					}
					port = p
				}
				select {
				case s.restart <- port:
				case <-ctx.Done():
					return ctx.Err()
				}
			default:
				s.logger.Warn("Unknown command, use 'r' or 'q'", "command", fields[0])
			}
		}
	}
}

// serve runs the HTTP server, restarting it when a port arrives on the
// restart channel. The old server is always fully shut down before the next
// one starts.
func (s *Server) serve(ctx context.Context) error {
	for {
		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", s.port),
			Handler: s.routes(),
		}
		errc := make(chan error, 1)
		go func() { errc <- srv.ListenAndServe() }()
		s.logger.Info("Preview server listening",
			log.FieldPort, s.port,
			"url", fmt.Sprintf("http://localhost:%d/", s.port))

		select {
		case err := <-errc:
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		case port := <-s.restart:
			s.shutdown(srv)
			s.logger.Info("Restarting preview server", log.FieldPort, port)
			s.port = port
		case <-ctx.Done():
			s.shutdown(srv)
			return ctx.Err()
		}
	}
}

func (s *Server) shutdown(srv *http.Server) {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		s.logger.Warn("Shutdown error", log.FieldError, err.Error())
	}
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Get("/", s.handleReport)
	r.Get("/output.html", s.handleReport)
	return r
}

func (s *Server) handleReport(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	html := s.html
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}
