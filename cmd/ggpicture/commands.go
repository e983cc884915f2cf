package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"

	"github.com/gogpu/gg"
	picture "github.com/gogpu/gg-picture"
	"github.com/gogpu/gg-picture/targets/raster"
	"github.com/muesli/termenv"
	"golang.org/x/image/draw"
	"gopkg.in/yaml.v3"
)

func parseCompression(name string) (picture.Compression, error) {
	switch name {
	case "", "none":
		return picture.CompressionNone, nil
	case "zstd":
		return picture.CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none or zstd)", name)
	}
}

func runDemo(e *env, args []string) error {
	fs := flag.NewFlagSet("demo", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var (
		out         = fs.String("o", "demo.ggpic", "output picture file")
		compression = fs.String("compression", e.cfg.Compression, "stream compression: none or zstd")
		pngOut      = fs.String("png", "", "also render to this PNG file")
		width       = fs.Int("width", 800, "picture width")
		height      = fs.Int("height", 600, "picture height")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	comp, err := parseCompression(*compression)
	if err != nil {
		return err
	}

	pic := recordDemo(*width, *height)
	defer pic.Close()

	if err := pic.Serialize(picture.FileSink(*out), picture.WithCompression(comp)); err != nil {
		return fmt.Errorf("demo: %w", err)
	}
	fmt.Fprintf(e.stdout, "wrote %s (%d commands)\n", *out, pic.Recording().Len())

	if *pngOut != "" {
		t := raster.NewTarget(pic.Width(), pic.Height(), rasterOptions(e.cfg)...)
		pic.Draw(t)
		if err := t.SaveToFile(*pngOut); err != nil {
			return fmt.Errorf("demo: %w", err)
		}
		fmt.Fprintf(e.stdout, "wrote %s\n", *pngOut)
	}
	return nil
}

// rasterOptions turns config defaults into raster target options.
func rasterOptions(cfg Config) []raster.Option {
	var opts []raster.Option
	if cfg.Background != "" {
		opts = append(opts, raster.WithBackground(gg.Hex(cfg.Background)))
	}
	if cfg.DefaultFont != "" {
		opts = append(opts, raster.WithDefaultFont(cfg.DefaultFont))
	}
	if cfg.SystemFonts {
		opts = append(opts, raster.WithFontResolver(raster.NewSystemFontResolver()))
	}
	return opts
}

func runRender(e *env, args []string) error {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	var (
		out      = fs.String("o", "out.png", "output PNG file")
		thumb    = fs.Int("thumb", e.cfg.Thumbnail, "scale so the longest side is at most N pixels (0 keeps full size)")
		font     = fs.String("font", e.cfg.DefaultFont, "default font file")
		sysFonts = fs.Bool("system-fonts", e.cfg.SystemFonts, "resolve font families from installed fonts")
		bg       = fs.String("background", e.cfg.Background, "background color as hex, e.g. #ffffff")
		maxSize  = fs.Int64("max-size", picture.DefaultMaxSize, "largest accepted stream body in bytes")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}
	in, err := inputArg(fs)
	if err != nil {
		return err
	}

	pic, err := picture.Deserialize(picture.FileSource(in), picture.WithMaxSize(*maxSize))
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	defer pic.Close()

	cfg := e.cfg
	cfg.Background, cfg.DefaultFont, cfg.SystemFonts = *bg, *font, *sysFonts
	t := raster.NewTarget(pic.Width(), pic.Height(), rasterOptions(cfg)...)
	pic.Draw(t)

	if *thumb <= 0 {
		if err := t.SaveToFile(*out); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	} else if err := writeThumbnail(*out, t.Image(), *thumb); err != nil {
		return fmt.Errorf("render: %w", err)
	}
	e.log.Info("rendered", "in", in, "out", *out, "width", pic.Width(), "height", pic.Height())
	return nil
}

// thumbnailSize fits w x h into a square of side limit, keeping the aspect
// ratio. Images already within the limit keep their size.
func thumbnailSize(w, h, limit int) (int, int) {
	if w <= limit && h <= limit {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

func writeThumbnail(path string, src image.Image, limit int) error {
	b := src.Bounds()
	w, h := thumbnailSize(b.Dx(), b.Dy(), limit)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	// #nosec G304 -- output path is provided by the user
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, dst); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// dumpDoc is the YAML form of a dumped picture.
type dumpDoc struct {
	Width    int                  `yaml:"width"`
	Height   int                  `yaml:"height"`
	Commands []picture.TraceEntry `yaml:"commands"`
}

func runDump(e *env, args []string) error {
	fs := flag.NewFlagSet("dump", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	format := fs.String("format", e.cfg.Format, "output format: text or yaml")
	if err := fs.Parse(args); err != nil {
		return err
	}
	in, err := inputArg(fs)
	if err != nil {
		return err
	}
	if *format != "text" && *format != "yaml" {
		return fmt.Errorf("dump: unknown format %q (want text or yaml)", *format)
	}

	pic, err := picture.Deserialize(picture.FileSource(in))
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	defer pic.Close()

	trace := picture.NewTraceTarget()
	pic.Recording().Playback(trace)

	if *format == "yaml" {
		enc := yaml.NewEncoder(e.stdout)
		enc.SetIndent(2)
		doc := dumpDoc{Width: pic.Width(), Height: pic.Height(), Commands: trace.Entries}
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("dump: %w", err)
		}
		return enc.Close()
	}

	out := termenv.NewOutput(e.stdout)
	fmt.Fprintln(e.stdout, out.String(fmt.Sprintf("picture %dx%d", pic.Width(), pic.Height())).Bold())
	for i, entry := range trace.Entries {
		op := out.String(entry.Op).Foreground(out.Color("6"))
		fmt.Fprintf(e.stdout, "%4d  %s %s\n", i, op, entry.Args)
	}
	return nil
}

func runInfo(e *env, args []string) error {
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(e.stderr)
	if err := fs.Parse(args); err != nil {
		return err
	}
	in, err := inputArg(fs)
	if err != nil {
		return err
	}

	// #nosec G304 -- input path is provided by the user
	f, err := os.Open(in)
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}
	h, err := picture.ReadHeader(f)
	_ = f.Close()
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}

	compression := "none"
	if h.Compressed {
		compression = "zstd"
	}
	fmt.Fprintf(e.stdout, "version:     %d\n", h.Version)
	fmt.Fprintf(e.stdout, "size:        %dx%d\n", h.Width, h.Height)
	fmt.Fprintf(e.stdout, "commands:    %d\n", h.Commands)
	fmt.Fprintf(e.stdout, "compression: %s\n", compression)
	fmt.Fprintf(e.stdout, "body:        %d bytes\n", h.BodySize)

	// Decode the whole stream so a corrupt body is reported here too.
	pic, err := picture.Deserialize(picture.FileSource(in))
	if err != nil {
		return fmt.Errorf("info: %w", err)
	}
	defer pic.Close()
	res := pic.Recording().Resources()
	fmt.Fprintf(e.stdout, "resources:   %d paths, %d brushes, %d images, %d recordings\n",
		res.PathCount(), res.BrushCount(), res.ImageCount(), res.RecordingCount())
	return nil
}
