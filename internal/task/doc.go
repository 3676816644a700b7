// Package task runs background jobs on a bounded queue served by a fixed
// set of workers. The todo service uses it to deliver change events
// without holding up HTTP responses.
package task
