package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FileWatcher tracks added, changed and removed Org files below the
// workspace root. File system events trigger a scan right away; the poll
// interval is the upper bound when events are unavailable or lost.
type FileWatcher struct {
	workspace    *Workspace
	stopCh       chan struct{}
	pollInterval time.Duration
	modTimes     map[string]time.Time

	// OnChange, if set, is called after a file was parsed again. doc is
	// nil when the file was removed.
	OnChange func(path string, doc *Document)
}

func NewFileWatcher(w *Workspace, pollInterval time.Duration) *FileWatcher {
	if pollInterval <= 0 {
		pollInterval = time.Second
	}
	return &FileWatcher{
		workspace:    w,
		stopCh:       make(chan struct{}),
		pollInterval: pollInterval,
		modTimes:     make(map[string]time.Time),
	}
}

func (fw *FileWatcher) Start() {
	go fw.run()
}

func (fw *FileWatcher) Stop() {
	close(fw.stopCh)
}

func (fw *FileWatcher) run() {
	ticker := time.NewTicker(fw.pollInterval)
	defer ticker.Stop()

	var events chan fsnotify.Event
	var errs chan error
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warningf("file events unavailable, polling every %s: %s", fw.pollInterval, err)
	} else {
		defer watcher.Close()
		fw.watchDirs(watcher, fw.workspace.RootDir())
		events, errs = watcher.Events, watcher.Errors
	}

	fw.scan()

	for {
		select {
		case <-fw.stopCh:
			return
		case <-ticker.C:
			fw.scan()
		case event, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					fw.watchDirs(watcher, event.Name)
				}
			}
			fw.scan()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			log.Warningf("watch %s: %s", fw.workspace.RootDir(), err)
		}
	}
}

// watchDirs subscribes to dir and every visible directory below it.
func (fw *FileWatcher) watchDirs(watcher *fsnotify.Watcher, dir string) {
	filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if path != fw.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			log.Warningf("watch %s: %s", path, err)
		}
		return nil
	})
}

func (fw *FileWatcher) scan() {
	currentFiles := make(map[string]bool)

	filepath.Walk(fw.workspace.RootDir(), func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			if path != fw.workspace.RootDir() && strings.HasPrefix(info.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if filepath.Ext(path) != Ext {
			return nil
		}

		currentFiles[path] = true

		lastMod, known := fw.modTimes[path]
		if !known || info.ModTime().After(lastMod) {
			fw.modTimes[path] = info.ModTime()
			doc, err := fw.workspace.ScanFile(path)
			if err != nil {
				log.Warningf("read %s: %s", path, err)
				return nil
			}
			fw.notify(path, doc)
		}
		return nil
	})

	for path := range fw.modTimes {
		if !currentFiles[path] {
			delete(fw.modTimes, path)
			fw.workspace.RemoveFile(path)
			fw.notify(path, nil)
		}
	}
}

func (fw *FileWatcher) notify(path string, doc *Document) {
	if fw.OnChange != nil {
		fw.OnChange(path, doc)
	}
}
