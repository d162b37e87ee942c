// Package apiclient is the HTTP client for the attendance ("pointage")
// tracking API used by the admin portal.
//
// Every authenticated call goes through one uniform wrapper that attaches
// the bearer credential, a JSON content type and a correlation request ID,
// and normalizes failures into a small error taxonomy:
//
//   - ErrAuthenticationRequired — the call was attempted without a
//     credential; it never reaches the network.
//   - *APIError — the server answered with a non-2xx status; the message is
//     best-effort extracted from the response body.
//   - ErrUnreachable — the request failed at the transport level; wrapped
//     around the underlying error so callers can tell "server said no" from
//     "server not there".
//
// Login is the single call exempt from the credential requirement. The API
// has shipped several spellings for the issued token and the embedded user
// payload over time, so Login checks a prioritized list of field names and
// fails with ErrTokenMissing only when none match. A 2xx login body carrying
// an explicit {error:true, message} flag is surfaced as *RejectionError.
//
// The credential itself is supplied through the CredentialSource interface,
// which lets the session layer stay the single owner of the live token.
//
// # Usage
//
//	client, err := apiclient.New("http://localhost:8000",
//	    apiclient.WithCredentials(manager),
//	)
//	users, err := client.ListUsers(ctx)
package apiclient
