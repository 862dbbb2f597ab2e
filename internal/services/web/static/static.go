// Package static embeds and serves the landing page assets.
package static

import (
	"embed"
	"net/http"
)

//go:embed landing.css landing.js
var assets embed.FS

// Handler serves the embedded assets. Callers strip the /static/ prefix.
func Handler() http.Handler {
	return http.FileServerFS(assets)
}
