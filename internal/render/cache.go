package render

import (
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererCache hands out glamour renderers per option set. A TermRenderer
// must not render from two goroutines at once, so each caller checks one out
// of the pool for its Options and returns it afterwards.
type rendererCache struct {
	mu    sync.RWMutex
	pools map[Options]*sync.Pool
}

var renderers = newRendererCache()

func newRendererCache() *rendererCache {
	return &rendererCache{pools: make(map[Options]*sync.Pool)}
}

func (c *rendererCache) pool(opts Options) *sync.Pool {
	c.mu.RLock()
	p, ok := c.pools[opts]
	c.mu.RUnlock()
	if ok {
		return p
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.pools[opts]; ok {
		return p
	}

	p = &sync.Pool{
		New: func() any {
			r, err := newRenderer(opts)
			if err != nil {
				return nil
			}
			return r
		},
	}
	c.pools[opts] = p
	return p
}

// checkout returns a renderer for opts. When the pool cannot build one the
// construction is repeated to report the error.
func (c *rendererCache) checkout(opts Options) (*glamour.TermRenderer, error) {
	if r, ok := c.pool(opts).Get().(*glamour.TermRenderer); ok && r != nil {
		return r, nil
	}
	return newRenderer(opts)
}

func (c *rendererCache) release(opts Options, r *glamour.TermRenderer) {
	if r != nil {
		c.pool(opts).Put(r)
	}
}

func (c *rendererCache) reset() {
	c.mu.Lock()
	c.pools = make(map[Options]*sync.Pool)
	c.mu.Unlock()
}

func (c *rendererCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pools)
}

func newRenderer(opts Options) (*glamour.TermRenderer, error) {
	ropts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}
	if opts.EnableEmoji {
		ropts = append(ropts, glamour.WithEmoji())
	}
	if opts.PreserveNewLines {
		ropts = append(ropts, glamour.WithPreservedNewLines())
	}
	return glamour.NewTermRenderer(ropts...)
}

// ClearCache drops every pooled renderer, e.g. after a theme change.
func ClearCache() {
	renderers.reset()
}

// CacheSize returns how many distinct option sets have a pool.
func CacheSize() int {
	return renderers.size()
}
