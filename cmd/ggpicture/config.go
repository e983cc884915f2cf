package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const defaultConfigPath = "~/.config/ggpicture/config.toml"

// Config holds defaults read from the TOML config file. Command-line flags
// override every field.
type Config struct {
	// Compression is "none" or "zstd".
	Compression string `toml:"compression"`
	// Background is a hex color painted behind rendered pictures.
	Background string `toml:"background"`
	// DefaultFont is a font file used when a family cannot be resolved.
	DefaultFont string `toml:"default_font"`
	// SystemFonts enables lookup of installed fonts by family.
	SystemFonts bool `toml:"system_fonts"`
	// Thumbnail is the longest side of rendered thumbnails, 0 for none.
	Thumbnail int `toml:"thumbnail"`
	// Format is the default dump format, "text" or "yaml".
	Format string `toml:"format"`
}

func defaultConfig() Config {
	return Config{
		Compression: "none",
		Format:      "text",
	}
}

// loadConfig reads the config file at path, expanding a leading "~". A
// missing file yields the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	expanded, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("config path %q: %w", path, err)
	}
	// #nosec G304 -- config path is provided by the user
	data, err := os.ReadFile(expanded)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", expanded, err)
	}
	return cfg, nil
}
