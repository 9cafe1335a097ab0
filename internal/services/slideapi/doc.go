// Package slideapi is the HTTP client for the remote slide services.
//
// It uploads presentations to the title extraction endpoint as multipart
// form data, posts titles and an audience to the feedback endpoint as JSON,
// and returns tagged results: either the decoded value or a Failure that
// records whether any response arrived, the server-supplied detail, and the
// transport error text. The client never retries; every request is bounded
// by a fixed timeout.
package slideapi
