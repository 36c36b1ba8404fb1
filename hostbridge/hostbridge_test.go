package hostbridge

import (
	"errors"
	"testing"

	"github.com/go-noregrets/noregrets/typelattice"
)

var errCaseFailure = errors.New("case failed on purpose")

func registryWithCounter() *Registry {
	reg := NewRegistry()
	reg.Register(Provider{
		Name:    "lib",
		Version: "v1.2.0",
		New: func() (any, error) {
			return typelattice.Object{
				"inc": typelattice.Func(func(args []any) (any, error) {
					return float64(1), nil
				}),
			}, nil
		},
	})
	return reg
}

func TestRunMediatesRegisteredLibrary(t *testing.T) {
	reg := registryWithCounter()
	tree, err := Run(reg, nil, func(load Loader) error {
		v, err := load.Load("lib")
		if err != nil {
			return err
		}
		_ = v
		return nil
	})
	if err != nil {
		t.Fatalf("client returned error: %v", err)
	}
	if tree.Len() < 2 {
		t.Fatalf("expected at least the root require node to be recorded, got %d nodes", tree.Len())
	}
}

func TestRunPassesThroughUnregisteredNames(t *testing.T) {
	reg := registryWithCounter()
	passthrough := map[string]any{"fs": "not-a-subject-library"}
	var got any
	_, err := Run(reg, passthrough, func(load Loader) error {
		v, err := load.Load("fs")
		if err != nil {
			return err
		}
		got = v
		return nil
	})
	if err != nil {
		t.Fatalf("client returned error: %v", err)
	}
	if got != "not-a-subject-library" {
		t.Fatalf("passthrough value was not handed through unmediated: %v", got)
	}
}

func TestRunReturnsErrorForUnknownName(t *testing.T) {
	reg := registryWithCounter()
	_, err := Run(reg, nil, func(load Loader) error {
		_, err := load.Load("nonexistent")
		return err
	})
	if err == nil {
		t.Fatalf("expected an error for an unregistered, non-passthrough name")
	}
}

func TestRunSuiteExecutesEveryCase(t *testing.T) {
	reg := registryWithCounter()
	var ran []string
	results, tree, err := RunSuite(reg, nil, func(h *Harness) {
		h.Describe("counter", func(it func(string, Client)) {
			it("loads the library", func(load Loader) error {
				ran = append(ran, "loads the library")
				_, err := load.Load("lib")
				return err
			})
			it("fails on purpose", func(load Loader) error {
				ran = append(ran, "fails on purpose")
				return errCaseFailure
			})
		})
	})
	if err != nil {
		t.Fatalf("RunSuite itself errored: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[1].Err != errCaseFailure {
		t.Fatalf("case error not propagated: %v", results[1].Err)
	}
	if tree.Len() < 2 {
		t.Fatalf("expected cases to share one accumulated tree")
	}
	if len(ran) != 2 {
		t.Fatalf("expected both cases to run even though one fails")
	}
}
