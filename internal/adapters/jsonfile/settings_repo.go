// Package jsonfile persiste les réglages dans un fichier settings.json (build desktop).
package jsonfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/souraizuni/ffxiv-best-craft/internal/ports"
)

const (
	appDirName  = "bestcraft"
	fileName    = "settings.json"
	settleDelay = 100 * time.Millisecond
	filePerm    = 0o644
	dirPerm     = 0o755
)

// DefaultPath renvoie <UserConfigDir>/bestcraft/settings.json (ou ./settings.json).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return fileName
	}
	return filepath.Join(dir, appDirName, fileName)
}

type SettingsRepository struct {
	path string

	mu sync.Mutex

	// Dernier contenu écrit par nous: le watcher l'ignore.
	lastWritten []byte
}

func NewSettingsRepository(path string) *SettingsRepository {
	return &SettingsRepository{path: path}
}

func (r *SettingsRepository) Path() string { return r.path }

func (r *SettingsRepository) Load(ctx context.Context) ([]byte, error) {
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, ports.ErrNotFound
	}
	return b, nil
}

// Save écrit dans un fichier temporaire puis renomme.
func (r *SettingsRepository) Save(ctx context.Context, blob []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		return err
	}
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, blob, filePerm); err != nil {
		return err
	}
	if err := os.Rename(tmp, r.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	r.lastWritten = append(r.lastWritten[:0], blob...)
	return nil
}

// Watch appelle onChange quand le fichier est modifié hors du process.
// Bloque jusqu'à l'annulation du contexte.
func (r *SettingsRepository) Watch(ctx context.Context, logger zerolog.Logger, onChange func([]byte)) error {
	if err := os.MkdirAll(filepath.Dir(r.path), dirPerm); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer w.Close()

	// On surveille le dossier: le rename de Save remplace l'inode du fichier.
	if err := w.Add(filepath.Dir(r.path)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(r.path), err)
	}
	logger.Info().Str("path", r.path).Msg("watching settings file")

	var timer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(r.path) {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			// Debounce: un éditeur peut écrire en plusieurs fois.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(settleDelay, func() {
				select {
				case fire <- struct{}{}:
				default:
				}
			})
		case <-fire:
			r.notify(ctx, logger, onChange)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("settings watcher error")
		}
	}
}

func (r *SettingsRepository) notify(ctx context.Context, logger zerolog.Logger, onChange func([]byte)) {
	b, err := r.Load(ctx)
	if err != nil {
		if !errors.Is(err, ports.ErrNotFound) {
			logger.Warn().Err(err).Msg("failed to read settings file")
		}
		return
	}

	r.mu.Lock()
	own := bytes.Equal(b, r.lastWritten)
	r.mu.Unlock()
	if own {
		return
	}
	onChange(b)
}
