package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const reloadDebounce = 100 * time.Millisecond

// Watch monitors the config file and sends freshly loaded settings on
// the returned channel whenever the file changes. The stop function
// ends the watch and closes the channel.
//
// The parent directory is watched rather than the file itself so that
// editors which replace the file on save (write to temp, rename over)
// are still observed.
func Watch(path string) (<-chan *Config, func(), error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		watcher.Close()
		return nil, nil, err
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	updates := make(chan *Config, 1)
	done := make(chan struct{})

	go func() {
		defer close(updates)

		var timer *time.Timer
		var fire <-chan time.Time

		for {
			select {
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
					continue
				}
				// Debounce bursts of events from a single save.
				if timer == nil {
					timer = time.NewTimer(reloadDebounce)
					fire = timer.C
				} else {
					timer.Reset(reloadDebounce)
				}
			case <-fire:
				timer = nil
				fire = nil
				cfg, err := Load(abs)
				if err != nil {
					continue
				}
				select {
				case updates <- cfg:
				default:
					// A pending update is stale now; replace it.
					select {
					case <-updates:
					default:
					}
					updates <- cfg
				}
			case <-watcher.Errors:
				// Watch errors are not fatal to the editor.
			case <-done:
				return
			}
		}
	}()

	stop := func() {
		close(done)
		watcher.Close()
	}
	return updates, stop, nil
}
