// Package edusign provides a client for the Edusign attendance REST API.
//
// # Overview
//
// Every method maps to one request against https://ext.edusign.fr/v1 and
// one parsed response envelope:
//
//	{"status": "success" | "error", "message": "...", "result": ...}
//
// A handful of operations chain a lookup and a write (LockCourse,
// CreateOrUpdateStudent, FindOrCreateProfessor, SendSignatureEmail,
// AddStudentsToGroup). Those sequences are not atomic on the remote side.
//
// # Configuration Example
//
//	client, err := edusign.NewClient(&edusign.Config{
//	  APIKey: os.Getenv("EDUSIGN_API_KEY"),
//	  Logger: logger,
//	})
//
// # Error Handling
//
// Failures are classified as:
//   - ErrMissingCredential when no API key is configured
//   - *TransportError wrapping ErrBadGateway (502) or ErrGatewayTimeout (504),
//     whatever the body says, or ErrMalformedResponse for a non-JSON body
//   - *RemoteError carrying the remote message verbatim for error envelopes,
//     or the transport error message when the request never completed
//   - *ValidationError for inputs rejected before any request is sent
//
// Some remote messages are expected at a given call site ("Course already
// locked", "Student already in the list", "No course with this ID found",
// "professor not found", "professor was deleted"). They are listed in one
// table, see ExpectedErrors, and turn into a nil result, a skipped write or
// a fallback to creation instead of an error.
//
// With Config.StrictErrors set to false, other error envelopes are logged
// and the call returns its zero value. Transport and validation errors are
// never dropped.
//
// # Caching
//
// Groups fetched with Client.Group are kept in a bounded LRU cache keyed by
// group ID. Writes through the client invalidate the affected entry;
// InvalidateGroup and PurgeGroupCache drop entries explicitly.
//
// # Security
//
//   - Bearer token authentication through an oauth2 static token source
//   - API key never logged or serialized to JSON
//   - Configurable TLS verification for dev/test environments
package edusign
