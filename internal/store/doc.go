// Package store defines interfaces for todo persistence operations.
// These interfaces abstract the underlying storage mechanism from
// the application's core logic, so business rules stay independent of
// where records live. The only implementation today is in-memory
// (internal/platform/memory); nothing survives a restart.
package store
