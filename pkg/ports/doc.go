/*
Package ports defines the driven ports (interfaces) of the Glossa compiler.

These interfaces decouple the compiler from where the configuration comes from
and where the training records go, so the same pipeline runs against Loam
repositories, in-memory fixtures, files or Redis.

# Key Interfaces

  - ConfigLoader: Produces the immutable configuration Snapshot for a run.
  - TrainingSink: The NLU/NLG engine interface records are folded onto.
  - ModelStore: Persists trained model artifacts.
  - Watchable: Optional change notification for loaders (hot retraining).
*/
package ports
