// Command irprint prints a procedure stored as a yaml tree document.
//
//	irprint [flags] file.yaml
//
// With -watch the file is printed again every time it changes.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/fsnotify/fsnotify"
	"github.com/hneemann/irprint"
	"github.com/hneemann/irprint/format"
	"github.com/hneemann/irprint/treefile"
	"github.com/hneemann/irprint/uast"
	"github.com/muesli/termenv"
	"github.com/pkg/errors"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type command struct {
	cfg    Config
	tree   bool
	path   string
	out    io.Writer
	logger *slog.Logger
	// chroma formatter name, empty if no color is used
	colors string
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("irprint", flag.ContinueOnError)
	flags.SetOutput(stderr)
	def := DefaultConfig()
	configFile := flags.String("config", "", "toml config file")
	indent := flags.Int("indent", def.Indent, "indentation width")
	color := flags.String("color", def.Color, "color mode: auto, always or never")
	style := flags.String("style", def.Style, "chroma style used to highlight the output")
	logLevel := flags.String("log-level", def.LogLevel, "log level: debug, info, warn or error")
	raw := flags.Bool("raw", def.Raw, "print the unformatted text")
	tree := flags.Bool("tree", false, "print the structure of the procedure")
	watch := flags.Bool("watch", false, "print again if the file changes")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return errors.New("exactly one file is required")
	}

	cfg := def
	if *configFile != "" {
		if err := LoadConfig(*configFile, &cfg); err != nil {
			return err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "indent":
			cfg.Indent = *indent
		case "color":
			cfg.Color = *color
		case "style":
			cfg.Style = *style
		case "log-level":
			cfg.LogLevel = *logLevel
		case "raw":
			cfg.Raw = *raw
		}
	})
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, _ := cfg.Level()

	c := &command{
		cfg:    cfg,
		tree:   *tree,
		path:   flags.Arg(0),
		out:    stdout,
		logger: slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})),
		colors: colorFormatter(cfg.Color, stdout),
	}
	if *watch {
		return c.watch(ctx)
	}
	return c.print()
}

// colorFormatter returns the chroma formatter matching the color
// capabilities of the writer.
func colorFormatter(mode string, w io.Writer) string {
	switch mode {
	case "never":
		return ""
	case "always":
		return "terminal256"
	}
	switch termenv.NewOutput(w).EnvColorProfile() {
	case termenv.TrueColor:
		return "terminal16m"
	case termenv.ANSI256:
		return "terminal256"
	case termenv.ANSI:
		return "terminal16"
	default:
		return ""
	}
}

func (c *command) printer() *irprint.Printer[*uast.Proc, *uast.FnArg, uast.Stmt, uast.Expr] {
	p := uast.NewPrinter().SetLogger(c.logger)
	if c.cfg.Raw {
		return p.SetFormatter(irprint.Identity)
	}
	return p.SetFormatter(format.New(c.cfg.Indent))
}

func (c *command) print() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}
	proc, err := treefile.Decode(data)
	if err != nil {
		return errors.WithMessage(err, c.path)
	}
	c.logger.Debug("decoded", "file", c.path, "proc", proc.Name)

	p := c.printer()
	if c.tree {
		return p.Tree(c.out, proc)
	}
	text, err := p.Proc(proc)
	if err != nil {
		return err
	}
	if c.colors == "" {
		_, err = fmt.Fprintln(c.out, text)
		return err
	}
	return quick.Highlight(c.out, text+"\n", "python", c.colors, c.cfg.Style)
}

// watch prints the file and prints it again on every change until
// the context is canceled. Errors while printing are logged, not returned.
func (c *command) watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "creating file watcher")
	}
	defer watcher.Close()

	// editors often replace the file, so the directory is watched
	path := filepath.Clean(c.path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errors.Wrap(err, "watching file")
	}

	c.printLogged()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				c.logger.Info("file changed", "file", path, "op", event.Op.String())
				c.printLogged()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Error("watcher error", "err", err)
		}
	}
}

func (c *command) printLogged() {
	if err := c.print(); err != nil {
		c.logger.Error("printing failed", "file", c.path, "err", err)
	}
}
