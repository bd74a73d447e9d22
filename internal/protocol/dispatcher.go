package protocol

import (
	"context"
	"log/slog"
	"net/url"
	"path"
	"strings"

	"hybrid/internal/config"
	"hybrid/internal/errors"
	"hybrid/internal/resolve"
	"hybrid/internal/virtual"
)

// Reserved hosts and the theme document path.
const (
	AboutHost    = "about"
	ThemeHost    = "theme"
	ThemeVarsCSS = "/vars.css"
)

// Options is the read-only configuration a Dispatcher is built from.
type Options struct {
	// CSPOrigin is sent as Allow-CSP-From on files served from the store
	CSPOrigin string
	// NotFoundPage is the store path served with every 404
	NotFoundPage string

	Version      string
	Dependencies map[string]string
	// AboutPackages defaults to virtual.DefaultAboutPackages when nil
	AboutPackages []string
	Theme         config.Theme
}

// Dispatcher turns virtual-URL requests into responses.
type Dispatcher struct {
	store    resolve.Store
	resolver *resolve.Resolver
	opts     Options
	logger   *slog.Logger

	about      []byte
	stylesheet []byte
}

// New builds a dispatcher over store. The generated documents are rendered
// once here since their inputs never change. It fails when the not-found
// page is missing from the store.
func New(store resolve.Store, opts Options, logger *slog.Logger) (*Dispatcher, error) {
	if opts.AboutPackages == nil {
		opts.AboutPackages = virtual.DefaultAboutPackages
	}
	about, err := virtual.Manifest(opts.Version, opts.Dependencies, opts.AboutPackages)
	if err != nil {
		return nil, errors.Wrap(errors.InternalError, "render about document", err)
	}

	ok, err := store.Exists(opts.NotFoundPage)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid, "check not-found page", err)
	}
	if !ok {
		return nil, errors.New(errors.ConfigInvalid, "not-found page missing from content root").
			WithDetails(map[string]string{"page": opts.NotFoundPage})
	}

	return &Dispatcher{
		store:      store,
		resolver:   resolve.New(store, logger),
		opts:       opts,
		logger:     logger,
		about:      about,
		stylesheet: virtual.Stylesheet(opts.Theme),
	}, nil
}

// Handle produces exactly one response for req. An error is returned only
// for an unparsable URL or a missing not-found page; the caller then has
// no response to send.
func (d *Dispatcher) Handle(ctx context.Context, req Request) (*Response, error) {
	u, err := url.Parse(req.URL)
	if err != nil {
		return nil, errors.Wrap(errors.InvalidURL, "cannot parse request URL", err)
	}
	if u.Scheme == "" || u.Opaque != "" {
		return nil, errors.New(errors.InvalidURL, "request URL must be scheme://host/path").
			WithDetails(map[string]string{"url": req.URL})
	}

	hostname, pathname := u.Hostname(), u.Path

	if hostname == AboutHost {
		return &Response{
			StatusCode: 200,
			Headers: map[string]string{
				HeaderAllowOrigin:  "*",
				HeaderAllowCSPFrom: "*",
				HeaderContentType:  "application/json",
			},
			Body: BytesBody(d.about),
		}, nil
	}

	if hostname == ThemeHost && pathname == ThemeVarsCSS {
		return &Response{
			StatusCode: 200,
			Headers: map[string]string{
				HeaderAllowOrigin:  "*",
				HeaderAllowCSPFrom: "*",
				HeaderCacheControl: "no-cache",
				HeaderContentType:  "text/css",
			},
			Body: BytesBody(d.stylesheet),
		}, nil
	}

	logical := joinLogical(hostname, pathname)
	resolved, err := d.resolver.Resolve(ctx, logical)
	if err != nil {
		d.logFailure(ctx, logical, err)
		return d.notFound()
	}

	rc, err := d.store.Open(resolved)
	if err != nil {
		// The file vanished or became unreadable after resolution
		d.logFailure(ctx, resolved, err)
		return d.notFound()
	}

	return &Response{
		StatusCode: 200,
		Headers: map[string]string{
			HeaderAllowOrigin:  "*",
			HeaderAllowCSPFrom: d.opts.CSPOrigin,
			HeaderCacheControl: "no-cache",
			HeaderContentType:  contentTypeOrDefault(resolved),
		},
		Body: StreamBody{rc},
	}, nil
}

// Serve handles req and passes the response to send.
func (d *Dispatcher) Serve(ctx context.Context, req Request, send Sink) error {
	resp, err := d.Handle(ctx, req)
	if err != nil {
		return err
	}
	send(resp)
	return nil
}

// Resolve exposes the resolution step for a logical path.
func (d *Dispatcher) Resolve(ctx context.Context, logicalPath string) (string, error) {
	return d.resolver.Resolve(ctx, logicalPath)
}

// Match is Resolve with the name of the winning rule.
func (d *Dispatcher) Match(ctx context.Context, logicalPath string) (resolve.Match, error) {
	return d.resolver.Match(ctx, logicalPath)
}

// Close releases dispatcher resources. There are none today; the store
// belongs to the caller.
func (d *Dispatcher) Close() error {
	return nil
}

func (d *Dispatcher) notFound() (*Response, error) {
	rc, err := d.store.Open(d.opts.NotFoundPage)
	if err != nil {
		return nil, errors.Wrap(errors.ConfigInvalid, "not-found page unavailable", err)
	}
	return &Response{
		StatusCode: 404,
		Headers: map[string]string{
			HeaderAllowOrigin:  "*",
			HeaderAllowCSPFrom: "*",
			HeaderCacheControl: "no-cache",
			HeaderContentType:  "text/html",
		},
		Body: StreamBody{rc},
	}, nil
}

// logFailure stays quiet for plain misses and warns on store faults.
func (d *Dispatcher) logFailure(ctx context.Context, p string, err error) {
	if errors.IsNotFound(err) {
		d.logger.DebugContext(ctx, "No file for path", "path", p)
		return
	}
	d.logger.WarnContext(ctx, "Store error answered as not found",
		"path", p,
		"code", string(errors.CodeOf(err)),
		"error", err.Error(),
	)
}

// joinLogical joins host and path with "/" separators, keeping a trailing
// slash from the path so directory-style rules see it.
func joinLogical(hostname, pathname string) string {
	joined := path.Join(hostname, pathname)
	if joined == "" {
		return "."
	}
	if strings.HasSuffix(pathname, "/") && !strings.HasSuffix(joined, "/") {
		joined += "/"
	}
	return joined
}
