// Package middleware decorates suite stores with cross-cutting behavior.
package middleware

import "github.com/aretw0/normsuite/pkg/ports"

// Middleware allows wrapping a SuiteStore to add behavior.
type Middleware func(ports.SuiteStore) ports.SuiteStore

// Chain wraps store with every middleware. The first middleware is the
// outermost one.
func Chain(store ports.SuiteStore, mws ...Middleware) ports.SuiteStore {
	for i := len(mws) - 1; i >= 0; i-- {
		store = mws[i](store)
	}
	return store
}
