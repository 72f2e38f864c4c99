/*
Package session implements session management and persistence orchestration.

Every request that touches a session's lists runs its read-modify-write inside
Manager.Update, which serializes access per session ID with a reference counted
in-process mutex and, when configured, a distributed lock shared by replicas.
*/
package session
