// Package web holds the HTML templates and static assets served by the
// product pages.
package web

import (
	"embed"
	"io/fs"
)

//go:embed views public
var content embed.FS

// Views returns the template tree rooted at views/.
func Views() fs.FS {
	sub, err := fs.Sub(content, "views")
	if err != nil {
		panic(err)
	}
	return sub
}

// Public returns the static asset tree rooted at public/.
func Public() fs.FS {
	sub, err := fs.Sub(content, "public")
	if err != nil {
		panic(err)
	}
	return sub
}
