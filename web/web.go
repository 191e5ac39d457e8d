// Package web embeds the server-rendered HTML views.
package web

import "embed"

//go:embed views/*.html
var Views embed.FS
