package raster

import "github.com/gogpu/gg"

// Option configures a Target during creation.
//
// Example:
//
//	t := raster.NewTarget(800, 600,
//		raster.WithBackground(gg.White),
//		raster.WithFontResolver(raster.NewSystemFontResolver()))
type Option func(*options)

type options struct {
	fonts       FontResolver
	background  *gg.RGBA
	defaultFont string
}

func defaultOptions() options {
	return options{}
}

// WithFontResolver sets how recorded font names become faces. Fonts the
// resolver cannot provide fall back to the default font. Without a
// resolver every family uses the default font.
func WithFontResolver(r FontResolver) Option {
	return func(o *options) {
		o.fonts = r
	}
}

// WithBackground fills the canvas with c before anything is drawn.
// Without it the canvas starts transparent.
func WithBackground(c gg.RGBA) Option {
	return func(o *options) {
		o.background = &c
	}
}

// WithDefaultFont loads the TrueType or OpenType file at path as the
// default font, replacing the embedded Go Regular. An unreadable file is
// logged and Go Regular is kept.
func WithDefaultFont(path string) Option {
	return func(o *options) {
		o.defaultFont = path
	}
}
