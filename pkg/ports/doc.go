/*
Package ports defines the driven ports (interfaces) of the turing engine.

These interfaces decouple the runner and the adapters from concrete storage and
table sources.

# Key Interfaces

  - TableLoader: Retrieves instruction tables by name (e.g., a directory or the built-in catalog).
  - ReportStore: Persists the outcome of runs (never resumable machine state).
*/
package ports
