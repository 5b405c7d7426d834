// Package httputil provides HTTP response helpers for the jsonscope API.
//
// # Overview
//
// Every handler answers with either a JSON body or a typed error:
//
//   - [WriteJSON]: encode a value with a status code
//   - [WriteError]: map an error to a status and write the error envelope
//   - [DecodeJSON]: strict request decoding with a body size limit
//
// # Errors
//
// Errors are written as
//
//	{"error": {"code": "INVALID_JSON", "message": "..."}}
//
// The status comes from the error code carried by [errors.Error]:
// INVALID_* maps to 400, *NOT_FOUND to 404, RENDER_FAILED to 422 and
// anything else to 500. Messages of internal errors are replaced by a
// generic text so backend details never reach clients.
package httputil
