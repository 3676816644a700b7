// Package domain contains the core business entities of the todo service:
// the Todo record, the Patch applied on update, and the validation errors
// they can produce. It has no knowledge of HTTP or storage.
package domain
