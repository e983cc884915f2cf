package raster

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/go-text/typesetting/fontscan"
	picture "github.com/gogpu/gg-picture"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

const defaultFontSize = 12

// ErrFontNotFound is returned by resolvers that have no font for a family.
var ErrFontNotFound = errors.New("raster: font not found")

// FontResolver turns a recorded font name into a face.
type FontResolver interface {
	Face(font picture.Font) (text.Face, error)
}

// FontResolverFunc adapts a function to FontResolver.
type FontResolverFunc func(font picture.Font) (text.Face, error)

// Face calls f.
func (f FontResolverFunc) Face(font picture.Font) (text.Face, error) {
	return f(font)
}

// goRegular parses the embedded Go Regular font once.
var goRegular = sync.OnceValues(func() (*text.FontSource, error) {
	return text.NewFontSource(goregular.TTF)
})

// loadDefaultFont returns the font used when a family cannot be resolved.
func loadDefaultFont(path string) *text.FontSource {
	if path != "" {
		src, err := text.NewFontSourceFromFile(path)
		if err == nil {
			return src
		}
		picture.Logger().Warn("raster: default font unreadable, using Go Regular", "path", path, "err", err)
	}
	src, err := goRegular()
	if err != nil {
		picture.Logger().Warn("raster: embedded font unavailable", "err", err)
		return nil
	}
	return src
}

// SystemFontResolver finds fonts installed on the system by family name.
// The system font index is built on first use and cached in the user cache
// directory by fontscan. Parsed fonts are kept for the resolver's lifetime.
// It is safe for concurrent use.
type SystemFontResolver struct {
	cacheDir string

	once    sync.Once
	fontMap *fontscan.FontMap

	mu      sync.Mutex
	sources map[string]*text.FontSource
}

// NewSystemFontResolver returns a resolver using the default user cache
// directory for the font index.
func NewSystemFontResolver() *SystemFontResolver {
	dir, err := os.UserCacheDir()
	if err != nil {
		picture.Logger().Debug("raster: no user cache dir for font index", "err", err)
	}
	return NewSystemFontResolverWithCache(dir)
}

// NewSystemFontResolverWithCache returns a resolver that keeps its font
// index in cacheDir.
func NewSystemFontResolverWithCache(cacheDir string) *SystemFontResolver {
	return &SystemFontResolver{
		cacheDir: cacheDir,
		sources:  make(map[string]*text.FontSource),
	}
}

// Face returns a face for font.Family at font.Size, or an error wrapping
// ErrFontNotFound if no installed font matches.
func (r *SystemFontResolver) Face(font picture.Font) (text.Face, error) {
	if font.Family == "" {
		return nil, fmt.Errorf("%w: empty family", ErrFontNotFound)
	}
	src, err := r.source(font.Family)
	if err != nil {
		return nil, err
	}
	size := font.Size
	if size <= 0 {
		size = defaultFontSize
	}
	return src.Face(size), nil
}

func (r *SystemFontResolver) source(family string) (*text.FontSource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if src, ok := r.sources[family]; ok {
		return src, nil
	}

	r.once.Do(r.loadIndex)
	loc, ok := r.fontMap.FindSystemFont(family)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFontNotFound, family)
	}
	src, err := text.NewFontSourceFromFile(loc.File)
	if err != nil {
		return nil, fmt.Errorf("raster: load font %q: %w", family, err)
	}
	r.sources[family] = src
	picture.Logger().Debug("raster: system font loaded", "family", family, "file", loc.File)
	return src, nil
}

func (r *SystemFontResolver) loadIndex() {
	r.fontMap = fontscan.NewFontMap(nil)
	if err := r.fontMap.UseSystemFonts(r.cacheDir); err != nil {
		picture.Logger().Warn("raster: system fonts unavailable", "err", err)
	}
}
