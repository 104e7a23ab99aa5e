// Package names provides an HTTP client for the names collection API.
//
// # Overview
//
// This package defines the client namelist uses to read and change the remote
// list of names. It handles HTTP communication, JSON decoding, client-side
// validation and the translation of every failure into a single,
// display-ready message.
//
// # Architecture
//
//   - client.go: HTTP client and request/response handling
//   - types.go: Record and ID, mirroring the API schema
//   - validate.go: name rules enforced before any request is sent
//   - errors.go: the Error type and the user-facing messages
//
// # Client Usage
//
//	client, err := names.NewClient("127.0.0.1:5000", names.WithTimeout(3*time.Second))
//	if err != nil {
//		return err
//	}
//
//	records, err := client.List(ctx)
//	if err != nil {
//		store.SetError(err.Error())
//	}
//
// # API Endpoints
//
//	GET    /api/names       → [{id, name, created_at}, ...]
//	POST   /api/names       {name} → 201 (+ created record)
//	DELETE /api/names/{id}  → 2xx, 404 when absent
//	GET    /api/health      → {status, db}
//
// # Error Handling
//
// Failures fall into two groups that callers surface the same way:
//
//   - Validation errors (ErrEmptyName, ErrNameTooLong, ErrMissingID) are
//     returned before any network activity.
//   - Transport and HTTP errors are returned as *Error. Error() is the message
//     to show the user; Unwrap exposes the cause for logging.
//
// The client never retries. Every failure is final for that call.
//
// # Identifiers
//
// The API may encode ids as JSON numbers or strings. ID decodes both into an
// opaque string so the rest of the program never depends on the encoding.
//
// # Timestamps
//
// Record.ParsedCreatedAt accepts RFC 3339, RFC 1123 (as produced by Flask's
// jsonify), "2006-01-02 15:04:05" and bare dates. Anything else maps to the
// Unix epoch so date ordering stays total.
package names
