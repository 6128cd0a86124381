// Package fakes in-memory implementations of the stores and collaborators for use case tests.
// Not-found errors are the storage packages' sentinels so callers see the same behavior as with Postgres.
package fakes
