// Package testutils provides testing utilities for the todo API.
//
// This package contains helpers for:
//   - Building a todo service over a fresh in-memory store
//   - Setting up test servers that expose the todo routes
//   - Executing JSON requests against a test server
//   - Asserting error responses
//
// A typical HTTP test looks like:
//
//	server := testutils.NewTodoServer(t)
//	resp := testutils.DoJSONRequest(t, server, http.MethodPost, "/todos", `{"title":""}`)
//	testutils.AssertErrorResponse(t, resp, http.StatusBadRequest, "title is required")
//
// Servers and response bodies are closed through t.Cleanup, so callers do
// not need to close them.
package testutils
