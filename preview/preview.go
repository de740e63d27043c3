// Package preview serves the built web assets locally so the page the
// native shell will load can be checked before packaging. A websocket
// channel reloads connected browsers when the assets or the app config
// change on disk.
package preview

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/xhd2015/kool/pkgs/web"
)

// DefaultPort is where port auto-discovery starts.
const DefaultPort = 8875

const pollInterval = 500 * time.Millisecond

const reloadSnippet = `<script>
(function() {
  var proto = location.protocol === "https:" ? "wss://" : "ws://";
  var ws = new WebSocket(proto + location.host + "/ws");
  ws.onmessage = function(ev) {
    if (ev.data === "reload") location.reload();
  };
})();
</script>`

// Options configures the preview server.
type Options struct {
	// AssetsDir is the built web assets directory to serve.
	AssetsDir string
	// ConfigPath additionally triggers reloads when it changes.
	ConfigPath string
	// Port is the listen port; 0 auto-finds from DefaultPort.
	Port int
}

type server struct {
	opts Options

	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve runs the preview server until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	if _, err := os.Stat(opts.AssetsDir); err != nil {
		return fmt.Errorf("assets dir %s: %w (run the web bundler first)", opts.AssetsDir, err)
	}

	port := opts.Port
	if port == 0 {
		var err error
		port, err = web.FindAvailablePort(DefaultPort, 100)
		if err != nil {
			return err
		}
	}

	s := &server{
		opts:    opts,
		clients: make(map[*websocket.Conn]bool),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	mux.HandleFunc("/", s.handleAssets)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf("localhost:%d", port),
		Handler: mux,
	}

	go s.watchLoop(ctx)
	go func() {
		<-ctx.Done()
		httpServer.Close()
	}()

	fmt.Printf("Preview server on http://localhost:%d (serving %s)\n", port, opts.AssetsDir)
	err := httpServer.ListenAndServe()
	if err == http.ErrServerClosed || ctx.Err() != nil {
		return nil
	}
	return err
}

// handleAssets serves files from the assets dir, injecting the reload
// snippet into any served HTML page.
func (s *server) handleAssets(w http.ResponseWriter, r *http.Request) {
	name := filepath.Clean(strings.TrimPrefix(r.URL.Path, "/"))
	if name == "." || name == "" {
		name = "index.html"
	}
	root := filepath.Clean(s.opts.AssetsDir)
	path := filepath.Join(root, name)
	// a sibling like dist-secret shares the prefix of dist, so the
	// containment check must include the path separator
	if path != root && !strings.HasPrefix(path, root+string(os.PathSeparator)) {
		http.NotFound(w, r)
		return
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, "index.html")
	}

	if !strings.HasSuffix(path, ".html") {
		http.ServeFile(w, r, path)
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(injectReload(string(data))))
}

// injectReload splices the reload snippet before </body>, or appends it
// when the page has no body close tag.
func injectReload(html string) string {
	idx := strings.LastIndex(html, "</body>")
	if idx < 0 {
		return html + reloadSnippet
	}
	return html[:idx] + reloadSnippet + html[idx:]
}

func (s *server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.clients[conn] = true
	s.mu.Unlock()

	// drain reads to notice disconnects
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				s.mu.Lock()
				delete(s.clients, conn)
				s.mu.Unlock()
				conn.Close()
				return
			}
		}
	}()
}

func (s *server) broadcastReload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.clients {
		if err := conn.WriteMessage(websocket.TextMessage, []byte("reload")); err != nil {
			delete(s.clients, conn)
			conn.Close()
		}
	}
}

// watchLoop polls the assets dir and config file mtimes and broadcasts
// a reload when either changes.
func (s *server) watchLoop(ctx context.Context) {
	last := s.currentStamp()
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			stamp := s.currentStamp()
			if stamp.After(last) {
				last = stamp
				s.broadcastReload()
			}
		}
	}
}

// currentStamp returns the newest mtime under the assets dir and the
// config file.
func (s *server) currentStamp() time.Time {
	var newest time.Time
	filepath.Walk(s.opts.AssetsDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if t := info.ModTime(); t.After(newest) {
			newest = t
		}
		return nil
	})
	if s.opts.ConfigPath != "" {
		if info, err := os.Stat(s.opts.ConfigPath); err == nil {
			if t := info.ModTime(); t.After(newest) {
				newest = t
			}
		}
	}
	return newest
}
