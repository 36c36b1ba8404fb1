package hostbridge

import (
	"golang.org/x/xerrors"

	"github.com/go-noregrets/noregrets/tracer"
)

// Loader is the single capability a traced client program is given:
// acquire a named module.
type Loader interface {
	Load(name string) (any, error)
}

// loader mediates every acquisition whose name is registered, and
// passes everything else straight through to passthrough, unmediated.
type loader struct {
	reg         *Registry
	tr          *tracer.Tracer
	passthrough map[string]any
}

func newLoader(reg *Registry, tr *tracer.Tracer, passthrough map[string]any) *loader {
	return &loader{reg: reg, tr: tr, passthrough: passthrough}
}

// Load acquires name. A registered subject library is constructed
// fresh via its Provider and wrapped in a tracer.Mediator before being
// handed to the client, so every subsequent Get/Set/Call/New the
// client performs against it is recorded. An unregistered name falls
// back to passthrough, matching a client's ordinary (non-subject)
// imports, which are out of scope for mediation.
func (l *loader) Load(name string) (any, error) {
	if p, ok := l.reg.Lookup(name); ok {
		root, err := p.New()
		if err != nil {
			return nil, xerrors.Errorf("hostbridge: constructing provider %q: %w", name, err)
		}
		return l.tr.Require(name, root), nil
	}
	if v, ok := l.passthrough[name]; ok {
		return v, nil
	}
	return nil, xerrors.Errorf("hostbridge: no provider or passthrough registered for %q", name)
}
