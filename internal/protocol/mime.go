package protocol

import (
	"mime"
	"path"
	"strings"
)

// DefaultContentType is used when the extension is unknown.
const DefaultContentType = "text/plain"

// webTypes pins the common web types so responses do not depend on the
// host's mime tables.
var webTypes = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".js":    "application/javascript",
	".mjs":   "application/javascript",
	".json":  "application/json",
	".txt":   "text/plain",
	".md":    "text/markdown",
	".xml":   "application/xml",
	".svg":   "image/svg+xml",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".webp":  "image/webp",
	".ico":   "image/vnd.microsoft.icon",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".wasm":  "application/wasm",
	".pdf":   "application/pdf",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
}

// ContentType infers a MIME type from name's extension, without parameters.
// The second result is false when the extension is unknown.
func ContentType(name string) (string, bool) {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return "", false
	}
	if t, ok := webTypes[ext]; ok {
		return t, true
	}
	if t := mime.TypeByExtension(ext); t != "" {
		if media, _, err := mime.ParseMediaType(t); err == nil {
			return media, true
		}
	}
	return "", false
}

// contentTypeOrDefault is ContentType falling back to DefaultContentType.
func contentTypeOrDefault(name string) string {
	if t, ok := ContentType(name); ok {
		return t
	}
	return DefaultContentType
}
