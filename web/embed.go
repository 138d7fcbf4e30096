// Package web provides the embedded static assets for the browser UI.
// The whole interface is a single page talking to the JSON API; it is
// embedded so the binary ships self-contained.
package web

import "embed"

// StaticFS embeds the web/static/ directory tree.
//
//go:embed all:static
var StaticFS embed.FS
