package pipeline

import (
	"sync"

	pi "github.com/pipid/ingester"
)

// Context carries one document through the validation pipeline. It is
// pooled; use AcquireContext and ReleaseContext around each run.
type Context struct {
	// Identity is the parsed document under validation. Phases treat it
	// as read-only.
	Identity map[string]any

	// Result accumulates issues from every phase.
	Result *pi.Result
}

var contextPool = sync.Pool{
	New: func() any { return &Context{} },
}

// AcquireContext gets a cleared Context from the pool.
func AcquireContext() *Context {
	c := contextPool.Get().(*Context)
	c.Identity = nil
	c.Result = nil
	return c
}

// ReleaseContext returns a Context to the pool. The caller keeps
// ownership of the Result; clear it before releasing if it must
// outlive the context.
func ReleaseContext(c *Context) {
	if c == nil {
		return
	}
	c.Identity = nil
	c.Result = nil
	contextPool.Put(c)
}
