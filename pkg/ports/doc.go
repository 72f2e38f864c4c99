/*
Package ports defines the driven ports (interfaces) of the todo lists application.

These interfaces decouple request handling from the way session state is kept,
allowing the same handlers to run against memory, file or Redis backends.

# Key Interfaces

  - StateStore: Responsible for persisting and loading session State.
  - DistributedLocker: Provides distributed locking for concurrent access to one session across replicas.
*/
package ports
