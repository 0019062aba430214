/*
Package session coordinates access to persisted suites.

A Manager serializes read-modify-write cycles on a suite: in-process callers
share a reference-counted mutex per suite ID, and an optional distributed
locker extends the guarantee across replicas sharing one store.
*/
package session
