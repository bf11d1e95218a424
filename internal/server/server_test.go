package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"enscribe/internal/builder"
)

func publicDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "posts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html><body><p>home</p></body></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "posts", "index.html"), []byte("<html><body>posts</body></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)</body>"), 0o644))
	return dir
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func TestLiveReloadInjection(t *testing.T) {
	s := New(func(context.Context, builder.BuildOptions) error { return nil },
		Options{PublicDir: publicDir(t), Logger: zaptest.NewLogger(t)})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "<p>home</p>")
	assert.Contains(t, body, `new WebSocket(`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(body), "</script>\n</body></html>"))
	assert.Equal(t, "no-cache, no-store, must-revalidate", resp.Header.Get("Cache-Control"))

	_, body = get(t, ts.URL+"/posts/")
	assert.Contains(t, body, "WebSocket")

	_, body = get(t, ts.URL+"/app.js")
	assert.Equal(t, "console.log(1)</body>", body)

	resp, body = get(t, ts.URL+"/missing.html")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.NotContains(t, body, "WebSocket")
}

func TestRebuildBroadcastsReload(t *testing.T) {
	builds := 0
	fail := false
	s := New(func(context.Context, builder.BuildOptions) error {
		builds++
		if fail {
			return errors.New("broken template")
		}
		return nil
	}, Options{PublicDir: publicDir(t), Logger: zaptest.NewLogger(t)})

	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return s.hub.Clients() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, s.Rebuild(context.Background(), builder.BuildOptions{}))
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "reload", string(msg))

	fail = true
	assert.EqualError(t, s.Rebuild(context.Background(), builder.BuildOptions{}), "broken template")
	assert.Equal(t, 2, builds)

	conn.Close()
	require.Eventually(t, func() bool { return s.hub.Clients() == 0 }, time.Second, 10*time.Millisecond)
}

func TestAddWatchesSkipsMissingPaths(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "content", "posts"), 0o755))
	cfg := filepath.Join(root, "site.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("title: x\n"), 0o644))

	s := New(nil, Options{
		Watch:  []string{filepath.Join(root, "content"), cfg, filepath.Join(root, "nope")},
		Logger: zaptest.NewLogger(t),
	})
	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, s.addWatches(w))
	assert.ElementsMatch(t, []string{
		filepath.Join(root, "content"),
		filepath.Join(root, "content", "posts"),
		root,
	}, w.WatchList())
}

func TestWatcherFollowsNewDirectories(t *testing.T) {
	root := t.TempDir()
	s := New(nil, Options{Watch: []string{root}, Logger: zaptest.NewLogger(t)})
	w, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, s.addWatches(w))

	nested := filepath.Join(root, "posts", "2024")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	s.watchCreated(w, fsnotify.Event{Name: filepath.Join(root, "posts"), Op: fsnotify.Create})
	assert.ElementsMatch(t, []string{root, filepath.Join(root, "posts"), nested}, w.WatchList())

	// files and other operations leave the watch list alone
	file := filepath.Join(root, "note.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))
	s.watchCreated(w, fsnotify.Event{Name: file, Op: fsnotify.Create})
	s.watchCreated(w, fsnotify.Event{Name: nested, Op: fsnotify.Write})
	assert.Len(t, w.WatchList(), 3)
}
