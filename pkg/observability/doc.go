/*
Package observability exposes suite activity as Prometheus metrics.

Metrics.Hooks returns a domain.LifecycleHooks value that can be handed to
normsuite.WithLifecycleHooks; every committed trace and every skipped piece
of evidence is then counted. The metrics are registered on a caller
supplied registerer so tests and embedders can keep them isolated from the
default registry.
*/
package observability
