// Package errs defines custom error types and utilities.
//
// Handlers return these errors and the global error handler renders them,
// so every failure reaches the client in one of a few consistent shapes.
//
// - JSON by default: {code, message, status, override, errors, action}.
// - Plain text, for endpoints whose clients expect a bare message.
// - An {"error": {"message": ...}} envelope.
package errs
