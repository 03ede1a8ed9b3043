package r2sync

import (
	"path"
	"strings"
)

const fallbackContentType = "application/octet-stream"

var contentTypes = map[string]string{
	".html":  "text/html",
	".htm":   "text/html",
	".css":   "text/css",
	".js":    "application/javascript",
	".mjs":   "application/javascript",
	".json":  "application/json",
	".xml":   "application/xml",
	".txt":   "text/plain",
	".md":    "text/markdown",
	".csv":   "text/csv",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".jpg":   "image/jpeg",
	".jpeg":  "image/jpeg",
	".gif":   "image/gif",
	".svg":   "image/svg+xml",
	".webp":  "image/webp",
	".ico":   "image/x-icon",
	".mp3":   "audio/mpeg",
	".mp4":   "video/mp4",
	".webm":  "video/webm",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".ttf":   "font/ttf",
	".wasm":  "application/wasm",
	".zip":   "application/zip",
	".gz":    "application/gzip",
}

// ResolveContentType maps a key's extension to a MIME type, falling back to
// a generic binary type for anything unrecognized.
func ResolveContentType(key string) string {
	ext := strings.ToLower(path.Ext(key))
	if contentType, ok := contentTypes[ext]; ok {
		return contentType
	}
	return fallbackContentType
}
