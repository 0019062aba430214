/*
Package ports defines the driven ports (interfaces) for the norm inference engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various planners, storage backends, and lock managers.

# Key Interfaces

  - Planner: enumerates every plan achieving a goal from a set of actions.
  - SuiteStore: persists and loads suite snapshots (odds-ratio masses).
  - DistributedLocker: serializes load-update-save cycles on a shared suite.
*/
package ports
