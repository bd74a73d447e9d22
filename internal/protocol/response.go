package protocol

import (
	"bytes"
	"io"
)

// Header names are written exactly as listed; they are case-sensitive on
// the wire of the embedding transport.
const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowCSPFrom = "Allow-CSP-From"
	HeaderCacheControl = "Cache-Control"
	HeaderContentType  = "Content-Type"
)

// Request is one virtual-URL request.
type Request struct {
	URL string
}

// Sink receives the single response produced for a request.
type Sink func(*Response)

// Body is either a StreamBody read from the store or an in-memory BytesBody.
type Body interface {
	// Reader returns the body content. Reading a StreamBody consumes it.
	Reader() io.Reader
	// Close releases any file handle held by the body.
	Close() error
}

// StreamBody streams a file opened from the store.
type StreamBody struct {
	io.ReadCloser
}

// Reader returns the underlying stream.
func (b StreamBody) Reader() io.Reader { return b.ReadCloser }

// BytesBody is a generated document.
type BytesBody []byte

// Reader returns a reader over the document.
func (b BytesBody) Reader() io.Reader { return bytes.NewReader(b) }

// Close is a no-op.
func (BytesBody) Close() error { return nil }

// Response is assembled once and not modified afterwards.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       Body
}

// WriteTo copies the body to w and always closes it, so a transport that
// stops early still releases the file handle.
func (r *Response) WriteTo(w io.Writer) (int64, error) {
	defer r.Body.Close()
	return io.Copy(w, r.Body.Reader())
}

// Close releases the body without reading it.
func (r *Response) Close() error {
	return r.Body.Close()
}
