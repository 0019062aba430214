/*
Package domain contains the core domain models of the norm inference engine.

It defines the plan graph vocabulary (Nodes, Actions, Goals, Plans), the closed
family of norm hypotheses, observed traces, and the probability parameters that
drive the likelihood models. This package is kept pure and free of external
dependencies like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Action: an ordered path of nodes representing one operator in the plan graph.
  - Goal: the start and target nodes handed to the planner.
  - Hypothesis: NoNorm, an unconditional norm (eventually/never), or a
    conditional norm guarded by a context node (next/not-next/eventually/never).
  - Trace: an observed path where each step may carry a sanction.
  - Snapshot: the persisted odds-ratio masses of a suite.
*/
package domain
