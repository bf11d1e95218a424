// internal/server/server.go
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"enscribe/internal/builder"
)

const debounceDuration = 300 * time.Millisecond

// BuildFunc regenerates the site.
type BuildFunc func(ctx context.Context, opts builder.BuildOptions) error

type Options struct {
	Port      int
	PublicDir string
	// Watch lists the files and directories whose changes trigger a
	// rebuild. Missing paths are skipped.
	Watch  []string
	Build  builder.BuildOptions
	Logger *zap.Logger
}

// Server serves the generated site, rebuilds it when sources change and
// tells open pages to reload.
type Server struct {
	build  BuildFunc
	opts   Options
	hub    *Hub
	logger *zap.Logger

	// mu serializes builds: the watcher and callers of Rebuild never
	// write the output directory concurrently.
	mu sync.Mutex
}

func New(build BuildFunc, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PublicDir == "" {
		opts.PublicDir = "public"
	}
	return &Server{build: build, opts: opts, hub: newHub(opts.Logger), logger: opts.Logger}
}

// Rebuild runs one build and, when it succeeds, reloads connected pages.
func (s *Server) Rebuild(ctx context.Context, opts builder.BuildOptions) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := time.Now()
	if err := s.build(ctx, opts); err != nil {
		return err
	}
	s.logger.Info("site rebuilt", zap.Duration("took", time.Since(start)))
	s.hub.broadcastMessage([]byte("reload"))
	return nil
}

// Handler serves the public directory with the live-reload script injected
// into HTML pages, and the websocket endpoint at /ws.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.hub, w, r)
	})
	mux.Handle("/", liveReloadWrapper(http.FileServer(http.Dir(s.opts.PublicDir))))
	return mux
}

// Run builds the site from scratch, then serves it until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	first := s.opts.Build
	first.CleanDestination = true
	if err := s.Rebuild(ctx, first); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}
	defer watcher.Close()
	if err := s.addWatches(watcher); err != nil {
		return err
	}
	go s.watchForChanges(ctx, watcher)

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		s.hub.closeAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	fmt.Printf("Serving site on http://localhost%s\n", srv.Addr)
	fmt.Println("Press Ctrl+C to stop")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// addWatches watches every directory below the watched paths. Files are
// watched through their parent directory so editors that save by rename
// are still seen.
func (s *Server) addWatches(watcher *fsnotify.Watcher) error {
	for _, path := range s.opts.Watch {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not stat path %s: %w", path, err)
		}
		if !info.IsDir() {
			s.watchDir(watcher, filepath.Dir(path))
			continue
		}
		if err := s.watchTree(watcher, path); err != nil {
			return fmt.Errorf("failed to watch directory %s: %w", path, err)
		}
	}
	return nil
}

// watchTree watches root and every directory below it.
func (s *Server) watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(walkPath string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			s.watchDir(watcher, walkPath)
		}
		return nil
	})
}

func (s *Server) watchDir(watcher *fsnotify.Watcher, dir string) {
	dir = filepath.Clean(dir)
	if slices.Contains(watcher.WatchList(), dir) {
		return
	}
	if err := watcher.Add(dir); err != nil {
		s.logger.Warn("could not watch directory", zap.String("dir", dir), zap.Error(err))
		return
	}
	s.logger.Debug("watching", zap.String("dir", dir))
}

// watchCreated starts watching a directory created after startup, along
// with anything already inside it.
func (s *Server) watchCreated(watcher *fsnotify.Watcher, event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil || !info.IsDir() {
		return
	}
	if err := s.watchTree(watcher, event.Name); err != nil {
		s.logger.Warn("could not watch new directory", zap.String("dir", event.Name), zap.Error(err))
	}
}

// watchForChanges rebuilds once changes have been quiet for
// debounceDuration. Build errors are logged and the server keeps serving
// the last good output.
func (s *Server) watchForChanges(ctx context.Context, watcher *fsnotify.Watcher) {
	timer := time.NewTimer(debounceDuration)
	timer.Stop()
	var changed string

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				s.watchCreated(watcher, event)
				changed = event.Name
				timer.Reset(debounceDuration)
			}
		case <-timer.C:
			s.logger.Info("change detected, rebuilding", zap.String("path", changed))
			if err := s.Rebuild(ctx, s.opts.Build); err != nil {
				s.logger.Error("rebuild failed", zap.Error(err))
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

func liveReloadWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		w.Header().Set("Pragma", "no-cache")
		w.Header().Set("Expires", "0")

		isHTML := strings.HasSuffix(r.URL.Path, ".html") || strings.HasSuffix(r.URL.Path, "/") || filepath.Ext(r.URL.Path) == ""
		if !isHTML {
			next.ServeHTTP(w, r)
			return
		}

		iw := newInterceptingWriter()
		next.ServeHTTP(iw, r)

		for key, values := range iw.Header() {
			for _, value := range values {
				w.Header().Add(key, value)
			}
		}

		bodyBytes := iw.body.Bytes()
		if iw.statusCode != http.StatusOK || !strings.HasPrefix(iw.header.Get("Content-Type"), "text/html") {
			w.WriteHeader(iw.statusCode)
			_, _ = w.Write(bodyBytes)
			return
		}

		injectedBody := bytes.Replace(bodyBytes, []byte("</body>"), []byte(liveReloadScript+"</body>"), 1)
		w.Header().Set("Content-Length", strconv.Itoa(len(injectedBody)))
		w.WriteHeader(iw.statusCode)
		_, _ = w.Write(injectedBody)
	})
}

// interceptingWriter buffers a response so the page can be edited before
// it is sent.
type interceptingWriter struct {
	body       *bytes.Buffer
	statusCode int
	header     http.Header
}

func newInterceptingWriter() *interceptingWriter {
	return &interceptingWriter{
		body:       new(bytes.Buffer),
		header:     make(http.Header),
		statusCode: http.StatusOK,
	}
}

func (iw *interceptingWriter) Header() http.Header {
	return iw.header
}

func (iw *interceptingWriter) Write(b []byte) (int, error) {
	return iw.body.Write(b)
}

func (iw *interceptingWriter) WriteHeader(statusCode int) {
	iw.statusCode = statusCode
}

const liveReloadScript = `
<script>
  (function() {
    let socket = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
    socket.onmessage = function(event) {
      if (event.data === "reload") {
        window.location.reload();
      }
    };
    socket.onerror = function() {
      console.error("Live reload connection error. Please restart 'enscribe serve'.");
    };
  })();
</script>
`
