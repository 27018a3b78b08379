package render

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tomz197/forestshooter/internal/loop"
)

// PNGRecorder saves every Nth frame, and the final one, as numbered PNG files.
type PNGRecorder struct {
	raster *Raster
	dir    string
	every  uint64

	mu    sync.Mutex
	saved []string
	err   error
}

// NewPNGRecorder records into dir, creating it if needed. every <= 0 saves only
// the final frame.
func NewPNGRecorder(raster *Raster, dir string, every int) (*PNGRecorder, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create recording dir: %w", err)
	}
	var n uint64
	if every > 0 {
		n = uint64(every)
	}
	return &PNGRecorder{raster: raster, dir: dir, every: n}, nil
}

// Render implements loop.Renderer. After the first failed save it stops recording.
func (p *PNGRecorder) Render(f *loop.Frame) {
	due := f.Ended || (p.every > 0 && f.Tick%p.every == 0)
	if !due {
		return
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return
	}

	p.raster.Draw(f)
	path := filepath.Join(p.dir, fmt.Sprintf("frame-%06d.png", f.Tick))
	if err := p.raster.SavePNG(path); err != nil {
		p.err = fmt.Errorf("save %s: %w", path, err)
		return
	}
	p.saved = append(p.saved, path)
}

// Saved returns the paths written so far.
func (p *PNGRecorder) Saved() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.saved...)
}

// Err returns the error that stopped recording, if any.
func (p *PNGRecorder) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.err
}
