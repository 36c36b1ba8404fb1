// Package hostbridge implements the Host Bridge : it
// resolves a client program's module acquisitions by name, mediates
// the ones that name a registered subject library, and passes
// everything else through untraced.
//
// A traced client is simply authored as a func(Loader) error and
// handed to Run; there is no source-rewrite step.
package hostbridge

import "golang.org/x/xerrors"

// Provider constructs one subject library's root value on demand.
// Name is the logical module specifier a client Loads it by; Version
// is recorded alongside a model so libver can later compare it against
// a replay-time library.
type Provider struct {
	Name string
	Version string
	New func() (any, error)
}

// Registry holds the Providers a Loader will mediate. Everything a
// client Loads that isn't registered here passes through unmediated.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{providers: map[string]Provider{}}
}

// Register adds p, keyed by p.Name. Registering the same name twice
// replaces the earlier Provider.
func (r *Registry) Register(p Provider) {
	r.providers[p.Name] = p
}

// Lookup returns the Provider registered under name, if any.
func (r *Registry) Lookup(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// Version returns the recorded version for a registered name ("" if it
// carries no version), or an error if name isn't registered.
func (r *Registry) Version(name string) (string, error) {
	p, ok := r.providers[name]
	if !ok {
		return "", xerrors.Errorf("hostbridge: no provider registered for %q", name)
	}
	return p.Version, nil
}
