// Package events lets the todo service announce mutations without knowing
// who listens. The service emits a TodoEvent after every successful create,
// update and delete; handlers registered on the emitter react to it.
package events
