// Package api handles incoming HTTP requests, request validation, and
// response formatting. It adapts the todo service to JSON over HTTP and maps
// service errors to status codes in one place (see MapErrorToStatusCode).
package api
