package hostbridge

import (
	"github.com/go-noregrets/noregrets/pathtree"
	"github.com/go-noregrets/noregrets/tracer"
)

// Client is a traced program: it acquires subject libraries through
// load and exercises them. Its own return error is the client's
// business logic failing, not a tracing failure; the Host Bridge keeps
// tracing regardless and the CLI exits 0 either way, so Run reports
// the error back to the caller to log rather than to treat as fatal.
type Client func(load Loader) error

// Run executes client once in plain execution mode: every acquisition
// of a name registered in reg is mediated and traced; unrecognized
// names are satisfied from passthrough (may be nil). It returns the
// accumulated path tree and whatever error client returned.
func Run(reg *Registry, passthrough map[string]any, client Client) (*pathtree.Tree, error) {
	tr := tracer.New()
	l := newLoader(reg, tr, passthrough)
	err := client(l)
	return tr.Tree, err
}
