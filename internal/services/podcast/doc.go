// Package podcast is the HTTP client for the podcast generation service.
//
// Submissions go through Generate (topic or URL, JSON body) or
// GenerateFromDocument (PDF, multipart body). Status polls a single job and is
// the only call that retries, and only when no response arrived. Errors
// returned by the client satisfy errors.Is against the services markers:
// ErrTransport for network failures, ErrRemote for HTTP error statuses, and
// ErrNotFound/ErrValidation for 404 and 400/422 responses.
package podcast
