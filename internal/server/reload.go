package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadScriptMarker identifies the injected script tag so pages whose
// content merely mentions the reload endpoint are still instrumented.
const reloadScriptMarker = `<script data-live-reload>`

const reloadScriptSource = `(function(){` +
	`var es = new EventSource("/__reload");` +
	`es.addEventListener("reload", function(){ location.reload(); });` +
	`})();`

type reloadHub struct {
	mu   sync.Mutex
	subs map[chan struct{}]struct{}
}

func newReloadHub() *reloadHub {
	return &reloadHub{
		subs: map[chan struct{}]struct{}{},
	}
}

func (h *reloadHub) subscribe() chan struct{} {
	ch := make(chan struct{}, 1)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *reloadHub) unsubscribe(ch chan struct{}) {
	h.mu.Lock()
	delete(h.subs, ch)
	h.mu.Unlock()
	close(ch)
}

func (h *reloadHub) notify() {
	h.mu.Lock()
	for ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	h.mu.Unlock()
}

func (s *Server) serveReloadSSE(w http.ResponseWriter, req *http.Request) {
	if s.hub == nil {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	_, _ = w.Write([]byte("event: ready\ndata: 1\n\n"))
	flusher.Flush()

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	for {
		select {
		case <-req.Context().Done():
			return
		case <-ch:
			_, _ = w.Write([]byte("event: reload\ndata: 1\n\n"))
			flusher.Flush()
		}
	}
}

func appendReloadScript(html string, isDev bool) string {
	if !isDev {
		return html
	}

	if strings.Contains(html, reloadScriptMarker) {
		return html
	}

	script := reloadScriptMarker + reloadScriptSource + "</script>"

	if strings.Contains(html, "</body>") {
		return strings.Replace(html, "</body>", script+"</body>", 1)
	}

	return html + script
}

// startWatcher watches the content and public dirs, flushing the site
// cache and pinging connected browsers on any change.
func (s *Server) startWatcher(dirs ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	for _, dir := range dirs {
		if err := addWatchDirs(watcher, dir); err != nil {
			_ = watcher.Close()
			return err
		}
	}

	s.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isWatchEvent(event.Op) {
					continue
				}
				if shouldAddWatchDir(event) {
					_ = addWatchDirs(watcher, event.Name)
				}
				s.cache.flush()
				s.hub.notify()
			case werr, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("watcher error", zap.Error(werr))
			}
		}
	}()

	return nil
}

func addWatchDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if shouldSkipDir(d.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

var skipDirs = map[string]struct{}{
	".git":         {},
	"node_modules": {},
}

func shouldSkipDir(name string) bool {
	_, exists := skipDirs[name]
	return exists
}

func isWatchEvent(op fsnotify.Op) bool {
	return op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func shouldAddWatchDir(event fsnotify.Event) bool {
	if event.Op&fsnotify.Create == 0 {
		return false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return false
	}

	return info.IsDir() && !shouldSkipDir(info.Name())
}
