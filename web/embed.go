package web

import (
	"embed"
	"io/fs"
)

// StaticFiles embeds the frontend build output (web/dist) into the Go binary
// so the directory ships as a single executable.
//
//go:embed all:dist
var staticFS embed.FS

// FS returns the embedded filesystem containing the frontend static files,
// rooted at the dist directory.
func FS() (fs.FS, error) {
	return fs.Sub(staticFS, "dist")
}
