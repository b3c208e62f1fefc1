// Package webapp holds the small runtime contract shared between mason,
// the code it generates, and the interactive shell.
//
// Applications follow one convention: the package named by the app config's
// `app.factory` exposes
//
//	func New(cfg map[string]any) http.Handler
//
// and may publish a request-scoped globals object with PublishGlobals. The
// package is dependency-free so generated code can be interpreted as well
// as compiled.
package webapp

import (
	"context"
	"net/http"
	"sync"
)

type ctxKey int

const captureKey ctxKey = iota

// Capture receives the globals object published during a single request.
// Synthetic clients install one on the request context before dispatching.
type Capture struct {
	mu  sync.Mutex
	obj any
}

func (c *Capture) set(obj any) {
	c.mu.Lock()
	c.obj = obj
	c.mu.Unlock()
}

// Object returns the published globals object, or nil if none was published.
func (c *Capture) Object() any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.obj
}

// WithCapture returns a request carrying a fresh capture slot.
func WithCapture(r *http.Request) (*http.Request, *Capture) {
	c := &Capture{}
	ctx := context.WithValue(r.Context(), captureKey, c)
	return r.WithContext(ctx), c
}

// PublishGlobals records obj as the request-scoped globals object. Outside
// a capturing client the call is a no-op.
func PublishGlobals(r *http.Request, obj any) {
	if c, ok := r.Context().Value(captureKey).(*Capture); ok && c != nil {
		c.set(obj)
	}
}

// GlobalsFrom returns the globals object published earlier in the same
// request, or nil.
func GlobalsFrom(r *http.Request) any {
	if c, ok := r.Context().Value(captureKey).(*Capture); ok && c != nil {
		return c.Object()
	}
	return nil
}
