package host

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"plugin"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/vovakirdan/comfy-wars/internal/abi"
)

// PluginLoader loads units built with -buildmode=plugin.
//
// The runtime caches plugins by path and never unloads them, so every new
// build is opened from a fresh shadow copy of the artifact. Old copies
// stay mapped for the life of the process. A plugin opens only if its
// pluginpath is new to the process and every non-main package it links
// matches the host's copy; cmd/unitgen builds units that way.
//
// Artifacts are cached process-wide by content, so hosts loading the same
// build share its code. Each still makes its own persistent state.
type PluginLoader struct {
	// ShadowDir receives the shadow copies. Empty means a directory under
	// os.TempDir.
	ShadowDir string
}

var (
	// shadowSeq numbers shadow copies across all loaders of the process.
	shadowSeq atomic.Uint64

	// opened maps the sha256 of an artifact to its resolved entry points.
	openedMu sync.Mutex
	opened   = make(map[string]Unit)
)

// Load implements Loader.
func (l *PluginLoader) Load(path string) (*Unit, error) {
	sum, err := hashFile(path)
	if os.IsNotExist(err) {
		return nil, &LoadError{Path: path, Op: "stat", Err: fmt.Errorf("%w: %v", ErrUnitMissing, err)}
	}
	if err != nil {
		return nil, &LoadError{Path: path, Op: "copy", Err: err}
	}

	openedMu.Lock()
	defer openedMu.Unlock()
	if u, ok := opened[sum]; ok {
		u.Path = path
		return &u, nil
	}

	shadow, err := l.shadowCopy(path)
	if err != nil {
		return nil, &LoadError{Path: path, Op: "copy", Err: err}
	}
	// The mapping outlives the file.
	defer os.Remove(shadow)

	p, err := plugin.Open(shadow)
	if err != nil {
		if strings.Contains(err.Error(), "already loaded") {
			err = fmt.Errorf("%v (a unit built from its import path keeps the same pluginpath; build it with cmd/unitgen)", err)
		}
		return nil, &LoadError{Path: path, Op: "open", Err: fmt.Errorf("%w: %v", ErrUnitMalformed, err)}
	}

	u := Unit{Path: path}
	if u.MakePersistent, err = lookup[abi.MakePersistentFunc](p, abi.SymMakePersistent); err != nil {
		return nil, &LoadError{Path: path, Op: "lookup", Err: err}
	}
	if u.Update, err = lookup[abi.UpdateFunc](p, abi.SymUpdate); err != nil {
		return nil, &LoadError{Path: path, Op: "lookup", Err: err}
	}
	if _, err := p.Lookup(abi.SymDrain); err == nil {
		if u.Drain, err = lookup[abi.DrainFunc](p, abi.SymDrain); err != nil {
			return nil, &LoadError{Path: path, Op: "lookup", Err: err}
		}
	}
	opened[sum] = u
	return &u, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// lookup resolves an exported function of type F.
func lookup[F any](p *plugin.Plugin, name string) (F, error) {
	var zero F
	sym, err := p.Lookup(name)
	if err != nil {
		return zero, fmt.Errorf("%w: %s", ErrEntryPointMissing, name)
	}
	f, ok := sym.(F)
	if !ok {
		return zero, fmt.Errorf("%w: %s has type %T", ErrEntryPointMissing, name, sym)
	}
	return f, nil
}

func (l *PluginLoader) shadowCopy(path string) (string, error) {
	dir := l.ShadowDir
	if dir == "" {
		dir = filepath.Join(os.TempDir(), "comfywars-shadow")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create shadow directory: %w", err)
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(filepath.Base(path), ext)
	dst := filepath.Join(dir, fmt.Sprintf("%s.%d.%d%s", base, os.Getpid(), shadowSeq.Add(1), ext))

	src, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		os.Remove(dst)
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(dst)
		return "", err
	}
	return dst, nil
}
