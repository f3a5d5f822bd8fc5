// Package http provides HTTP handlers and middleware for the studio API.
//
// The router exposes the following endpoints:
//   - GET /sessions, POST /sessions, GET /sessions/{id}, PATCH /sessions/{id},
//     DELETE /sessions/{id}: recording session management exchanging the
//     `sessionDTO` payload defined in session_handler.go. Booking a slot that
//     overlaps a non-cancelled session in the same room returns 409 with the
//     conflicting sessions in the body.
//   - PUT /sessions/{id}/status: advances a session through its lifecycle.
//     Illegal transitions return 409 with error_code INVALID_STATUS_TRANSITION.
//   - GET /availability: answers whether a room is free for a slot. Query:
//     roomId, date, startTime, endTime and optional excludeId.
//   - GET/POST /rooms, /artists, /albums, /tracks, /members, /equipment plus
//     GET/PUT/DELETE on /{id}: catalog endpoints exchanging the DTOs defined in
//     their respective handler files.
//   - GET /invoices, POST /invoices, GET/PUT/DELETE /invoices/{id}: invoice
//     management. POST /invoices/calculate derives line items, subtotal, tax
//     and total from a list of session IDs without persisting anything.
//   - GET /studio, PUT /studio: the singleton studio profile. GET /settings,
//     PUT /settings: billing defaults (currency and tax rate).
//   - GET /dashboard: today's and this week's sessions, monthly revenue,
//     active albums and a recent activity feed.
//   - GET /reports/room-utilization?year=&month= and GET /reports/revenue?year=:
//     monthly reporting endpoints.
//   - GET /healthz: liveness probe. GET /metrics: Prometheus exposition.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http
