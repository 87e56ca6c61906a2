package assets

import (
	"context"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"space-scroll/internal/logger"
)

// Handle tracks one background load. Done is closed when decoding finishes (success or failure);
// the scene mutation itself happens later, when the owning goroutine drains the queue.
type Handle struct {
	Name string
	done chan struct{}
	err  error
}

// Done returns a channel closed when decoding has finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

// Err returns the load error. Only valid after Done is closed.
func (h *Handle) Err() error {
	return h.err
}

// Options configures a Loader.
type Options struct {
	Dir            string // resolved against relative asset names
	MaxTextureSize int    // images larger than this are scaled down; 0 = no limit
	Decode         DecodeFunc
}

// Loader decodes images in background goroutines and posts completions to a Queue.
// It implements scene.Loader. Failures are logged and never reach the scene.
type Loader struct {
	ctx     context.Context
	opts    Options
	queue   *Queue
	log     *logger.Logger
	wg      sync.WaitGroup
	pending atomic.Int32
}

// NewLoader returns a Loader whose goroutines stop early once ctx is cancelled.
// A nil Decode uses Decode.
func NewLoader(ctx context.Context, opts Options, queue *Queue, log *logger.Logger) *Loader {
	if opts.Decode == nil {
		opts.Decode = Decode
	}
	return &Loader{ctx: ctx, opts: opts, queue: queue, log: log}
}

// Path resolves an asset name against the asset directory.
func (l *Loader) Path(name string) string {
	if filepath.IsAbs(name) || l.opts.Dir == "" {
		return name
	}
	return filepath.Join(l.opts.Dir, name)
}

// DecodeNow synchronously decodes the named asset and applies the texture size limit.
func (l *Loader) DecodeNow(name string) (image.Image, error) {
	img, err := l.opts.Decode(l.Path(name))
	if err != nil {
		return nil, err
	}
	return Fit(img, l.opts.MaxTextureSize), nil
}

// Texture loads one image and posts apply(img) to the queue on success.
func (l *Loader) Texture(name string, apply func(img image.Image)) {
	l.Load(name, apply)
}

// Load is Texture returning the Handle.
func (l *Loader) Load(name string, apply func(img image.Image)) *Handle {
	return l.start(name, func(ctx context.Context) (image.Image, error) {
		return l.DecodeNow(name)
	}, apply)
}

// Cube loads six faces concurrently, joins them into a horizontal strip and posts apply(strip).
// Any failing face fails the whole cube.
func (l *Loader) Cube(faces [6]string, apply func(strip image.Image)) {
	l.LoadCube(faces, apply)
}

// LoadCube is Cube returning the Handle.
func (l *Loader) LoadCube(faces [6]string, apply func(strip image.Image)) *Handle {
	name := "cube[" + strings.Join(faces[:], ",") + "]"
	return l.start(name, func(ctx context.Context) (image.Image, error) {
		var decoded [6]image.Image
		g, gctx := errgroup.WithContext(ctx)
		for i, face := range faces {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				img, err := l.DecodeNow(face)
				if err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				decoded[i] = img
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
		return CubeStrip(decoded)
	}, apply)
}

func (l *Loader) start(name string, work func(ctx context.Context) (image.Image, error), apply func(image.Image)) *Handle {
	h := &Handle{Name: name, done: make(chan struct{})}
	l.pending.Add(1)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		img, err := l.run(work)
		if err != nil {
			h.err = fmt.Errorf("load %s: %w", name, err)
			close(h.done)
			l.pending.Add(-1)
			l.log.Log(h.err.Error())
			return
		}
		close(h.done)
		l.queue.Post(func() {
			apply(img)
			l.pending.Add(-1)
			l.log.Logf("loaded %s (%dx%d)", name, img.Bounds().Dx(), img.Bounds().Dy())
		})
	}()
	return h
}

func (l *Loader) run(work func(ctx context.Context) (image.Image, error)) (image.Image, error) {
	if err := l.ctx.Err(); err != nil {
		return nil, err
	}
	img, err := work(l.ctx)
	if err != nil {
		return nil, err
	}
	// Cancelled during decode: drop the result.
	if err := l.ctx.Err(); err != nil {
		return nil, err
	}
	return img, nil
}

// Wait blocks until every issued load has finished decoding. Completions may still be waiting in the queue.
func (l *Loader) Wait() {
	l.wg.Wait()
}

// Pending returns the number of loads whose result has not yet been applied or dropped.
func (l *Loader) Pending() int {
	return int(l.pending.Load())
}
