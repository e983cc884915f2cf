// Command ggpicture records, renders and inspects serialized pictures.
//
// Usage:
//
//	ggpicture [-v] [-config file] <command> [flags] [file]
//
// Commands:
//
//	demo    record a demo picture and serialize it
//	render  rasterize a serialized picture to PNG
//	dump    list the commands of a serialized picture
//	info    print the stream header of a serialized picture
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	picture "github.com/gogpu/gg-picture"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintln(os.Stderr, "ggpicture:", err)
		}
		os.Exit(1)
	}
}

// env is what every command gets: parsed config and output streams.
type env struct {
	cfg    Config
	stdout io.Writer
	stderr io.Writer
	log    *slog.Logger
}

type command struct {
	name  string
	usage string
	run   func(e *env, args []string) error
}

var commands = []command{
	{"demo", "record a demo picture and serialize it", runDemo},
	{"render", "rasterize a serialized picture to PNG", runRender},
	{"dump", "list the commands of a serialized picture", runDump},
	{"info", "print the stream header of a serialized picture", runInfo},
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("ggpicture", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		verbose    = fs.Bool("v", false, "enable debug logging")
		configPath = fs.String("config", defaultConfigPath, "config file (TOML)")
	)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: ggpicture [-v] [-config file] <command> [flags] [file]")
		fmt.Fprintln(stderr, "\ncommands:")
		for _, c := range commands {
			fmt.Fprintf(stderr, "  %-8s %s\n", c.name, c.usage)
		}
		fmt.Fprintln(stderr, "\nflags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("missing command")
	}

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	picture.SetLogger(logger)
	defer picture.SetLogger(nil)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	e := &env{cfg: cfg, stdout: stdout, stderr: stderr, log: logger}

	name := fs.Arg(0)
	for _, c := range commands {
		if c.name == name {
			return c.run(e, fs.Args()[1:])
		}
	}
	fs.Usage()
	return fmt.Errorf("unknown command %q", name)
}

// inputArg returns the single positional file argument of a command.
func inputArg(fs *flag.FlagSet) (string, error) {
	if fs.NArg() != 1 {
		return "", fmt.Errorf("%s: expected one input file, got %d", fs.Name(), fs.NArg())
	}
	return fs.Arg(0), nil
}
