// Package memory provides process-local implementations of the store
// interfaces. State lives for the lifetime of the process only.
package memory
