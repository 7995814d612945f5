// Package server implements the interactive HTTP viewer.
//
// Every browser tab gets a session holding its own layout store, so one
// viewer collapsing a package never changes what another viewer sees.
// Requests against a session are serialized by the session's mutex; a
// toggle returns only after the relayout has reached the root.
//
// # Routes
//
//	GET    /                                  HTML viewer (creates a session)
//	GET    /healthz                           liveness probe with build info
//	POST   /api/sessions                      create a session
//	GET    /api/sessions/{id}                 geometry document
//	DELETE /api/sessions/{id}                 drop a session
//	POST   /api/sessions/{id}/toggle/{box}    collapse or expand one box
//	POST   /api/sessions/{id}/expand-all      expand every container
//	POST   /api/sessions/{id}/collapse-all    collapse every container
//	GET    /api/sessions/{id}/search?q=       search matches and revealed ancestors
//	GET    /api/sessions/{id}/svg?q=&embedded=1  current diagram
//
// Errors are JSON objects with "code" and "message". Invalid toggle targets
// answer 400; unknown sessions answer 404.
package server
