package backend

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// SpoolExt is the extension of spool files.
const SpoolExt = ".ndjson"

// Spool tails newline-delimited broadcast files in a directory. It is the
// local delivery path for publishers on the same machine.
type Spool struct {
	dir  string
	w    *fsnotify.Watcher
	disp *Dispatcher
	log  *slog.Logger

	mu      sync.Mutex
	offsets map[string]int64
}

// NewSpool watches dir, creating it if needed. Existing files are tailed
// from their current end.
func NewSpool(dir string, disp *Dispatcher, logger *slog.Logger) (*Spool, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("spool dir: %w", err)
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(dir); err != nil {
		fw.Close()
		return nil, err
	}

	s := &Spool{
		dir:     dir,
		w:       fw,
		disp:    disp,
		log:     logger,
		offsets: make(map[string]int64),
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		fw.Close()
		return nil, err
	}
	for _, e := range entries {
		if e.IsDir() || !isSpoolFile(e.Name()) {
			continue
		}
		if info, err := e.Info(); err == nil {
			s.offsets[filepath.Join(dir, e.Name())] = info.Size()
		}
	}
	return s, nil
}

// Dir returns the watched directory.
func (s *Spool) Dir() string { return s.dir }

// Run delivers appended lines until ctx is cancelled.
func (s *Spool) Run(ctx context.Context) error {
	defer s.w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-s.w.Events:
			if !ok {
				return nil
			}
			if !isSpoolFile(ev.Name) {
				continue
			}
			switch {
			case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
				s.forget(ev.Name)
			case ev.Has(fsnotify.Create), ev.Has(fsnotify.Write):
				if err := s.Drain(ev.Name); err != nil {
					s.log.Warn("spool read failed", "path", ev.Name, "err", err)
				}
			}
		case err, ok := <-s.w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("spool watcher error", "err", err)
		}
	}
}

// Drain dispatches every complete line appended to path since the last call.
// A file that shrank is read again from the start.
func (s *Spool) Drain(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		delete(s.offsets, path)
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return err
	}
	off := s.offsets[path]
	if info.Size() < off {
		off = 0
	}
	if _, err := f.Seek(off, 0); err != nil {
		return err
	}

	lines, n, err := readLines(f)
	s.offsets[path] = off + n
	for _, raw := range lines {
		line, perr := ParseSpoolLine(raw)
		if perr != nil {
			s.log.Warn("skipping spool line", "path", path, "err", perr)
			continue
		}
		s.disp.Line(SourceSpool, line)
	}
	return err
}

func (s *Spool) forget(path string) {
	s.mu.Lock()
	delete(s.offsets, path)
	s.mu.Unlock()
}

func isSpoolFile(name string) bool {
	return strings.HasSuffix(name, SpoolExt)
}
