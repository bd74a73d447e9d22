// Package protocol answers requests for the custom virtual-URL scheme.
//
// A request URL has the form scheme://<host>/<path>. Two hosts are reserved:
//   - about: any path returns a JSON manifest of the version and allow-listed
//     dependencies.
//   - theme: only /vars.css returns the generated stylesheet; every other
//     theme path falls through to file resolution.
//
// Every other URL is joined into a logical path (host + path) and resolved
// against the content store through the ordered candidate rules of package
// resolve. Resolution failures of any kind produce a 404 carrying the
// configured not-found page; the filesystem error is logged, never exposed.
//
// A Dispatcher holds only read-only state and serves any number of requests
// concurrently.
package protocol
