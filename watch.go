package wheels

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// TextureWatcher reloads texture files when they change on disk. File events
// are queued by a background goroutine; the pixels are only rewritten by
// Poll, which must be called from the render thread.
type TextureWatcher struct {
	fs *fsnotify.Watcher

	mu      sync.Mutex
	pending map[string]struct{}

	// Owned by the render thread.
	textures map[string]*Texture
	dirs     map[string]bool

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
	closeErr  error
}

// NewTextureWatcher starts a watcher with nothing watched.
func NewTextureWatcher() (*TextureWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("wheels: failed to start file watcher: %w", err)
	}
	w := &TextureWatcher{
		fs:       fsw,
		pending:  make(map[string]struct{}),
		textures: make(map[string]*Texture),
		dirs:     make(map[string]bool),
		done:     make(chan struct{}),
	}
	w.wg.Add(1)
	go w.run()
	return w, nil
}

// Watch reloads tex from path whenever the file is written or replaced.
// The file's directory is watched so editors that save by rename are seen.
func (w *TextureWatcher) Watch(path string, tex *Texture) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("wheels: watch %s: %w", path, err)
	}
	dir := filepath.Dir(abs)
	if !w.dirs[dir] {
		if err := w.fs.Add(dir); err != nil {
			return fmt.Errorf("wheels: watch %s: %w", dir, err)
		}
		w.dirs[dir] = true
	}
	w.textures[abs] = tex
	return nil
}

// Watched returns the number of watched texture files.
func (w *TextureWatcher) Watched() int {
	return len(w.textures)
}

// Poll applies queued reloads and returns how many textures were updated.
// Files that fail to decode or no longer match their texture size are
// skipped, logged and reported in the joined error.
func (w *TextureWatcher) Poll() (int, error) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return 0, nil
	}
	paths := make([]string, 0, len(w.pending))
	for p := range w.pending {
		paths = append(paths, p)
	}
	clear(w.pending)
	w.mu.Unlock()

	var reloaded int
	var errs []error
	for _, p := range paths {
		tex, ok := w.textures[p]
		if !ok {
			continue
		}
		if err := reloadTexture(p, tex); err != nil {
			Logger().Warn("texture reload failed", "path", p, "err", err)
			errs = append(errs, err)
			continue
		}
		Logger().Debug("texture reloaded", "path", p)
		reloaded++
	}
	return reloaded, errors.Join(errs...)
}

// Close stops the watcher goroutine and releases the OS watch handles.
// Later calls return the first call's result.
func (w *TextureWatcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		w.closeErr = w.fs.Close()
		w.wg.Wait()
	})
	return w.closeErr
}

func (w *TextureWatcher) enqueue(path string) {
	w.mu.Lock()
	w.pending[path] = struct{}{}
	w.mu.Unlock()
}

func (w *TextureWatcher) run() {
	defer w.wg.Done()
	for {
		select {
		case e, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if abs, err := filepath.Abs(e.Name); err == nil {
					w.enqueue(abs)
				}
			}
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			Logger().Warn("file watcher error", "err", err)
		case <-w.done:
			return
		}
	}
}

func reloadTexture(path string, tex *Texture) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return fmt.Errorf("wheels: decode %s: %w", path, err)
	}
	return tex.Replace(img)
}
