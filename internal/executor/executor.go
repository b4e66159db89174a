package executor

import "context"

// Options controls how the background is configured
type Options struct {
	// PictureOptions is the GNOME picture-options value, "spanned" for composites
	PictureOptions string
	// SetDarkURI also writes picture-uri-dark
	SetDarkURI bool
}

// URIReader reports the currently configured background URI
type URIReader interface {
	CurrentURI(ctx context.Context) (string, error)
}
