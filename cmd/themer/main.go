// Command themer remaps a set of colours onto a 16-colour terminal scheme.
//
//	themer [flags] color...
//
// Each scheme slot is blended toward the input colours closest to it in hue
// (among those of similar brightness) and the new scheme is printed one
// "#rrggbb" line per slot.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agloo/themer/internal/config"
	"github.com/agloo/themer/internal/logger"
	"github.com/agloo/themer/internal/model"
	"github.com/agloo/themer/internal/service"
	"github.com/agloo/themer/internal/storage"
)

var log = logger.New("themer")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal("%v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	fs := flag.NewFlagSet("themer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	numAdj := fs.Int("n", cfg.Adjacency, "number of input colors averaged into each scheme color")
	decay := fs.Float64("d", cfg.Decay, "rate at which farther colors stop affecting each scheme color")
	baseWeight := fs.Float64("b", cfg.BaseWeight, "weight of the closest color")
	fixed := fs.Bool("fixed", false, "use the fixed weights 20,25,30 (implies -n 3)")
	threshold := cfg.Threshold
	fs.Func("t", fmt.Sprintf("squared brightness difference beyond which hue is ignored, decimal or 0x hex (default %g)", cfg.Threshold), func(v string) error {
		f, err := config.ParseFloat(v)
		if err != nil {
			return err
		}
		threshold = f
		return nil
	})
	schemeFile := fs.String("f", "", "scheme file to remap (xrdb, or base16 .yaml)")
	savedName := fs.String("s", "", "saved scheme to remap")
	imagePath := fs.String("image", "", "also take input colors from this image")
	format := fs.String("format", "lines", "output format: lines, xrdb or base16")
	preview := fs.Bool("preview", false, "draw the new scheme as swatches on stderr")
	contrast := fs.Bool("contrast", false, "push colors too close to the background away from it")
	saveAs := fs.String("save", "", "save the new scheme under this name")
	logLevel := fs.String("log-level", cfg.LogLevel, "log level: trace, debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: themer [flags] color...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if _, err := logger.ParseLevel(*logLevel); err != nil {
		return err
	}
	logger.SetGlobalLevelFromString(*logLevel)
	logger.SetColored(!cfg.NoColor)

	if *schemeFile != "" && *savedName != "" {
		return errors.New("-f and -s are mutually exclusive")
	}

	opts := model.MixOptions{
		Adjacency: *numAdj,
		Weights:   service.LinearWeights(*numAdj, *baseWeight, *decay),
		Threshold: threshold,
	}
	if *fixed {
		opts.Weights = service.FixedWeights()
		opts.Adjacency = len(opts.Weights)
	}

	inputs, err := service.ParseHexList(fs.Args())
	if err != nil {
		return err
	}
	if *imagePath != "" {
		b, err := os.ReadFile(*imagePath)
		if err != nil {
			return err
		}
		fromImage, err := service.ExtractColors(b, cfg.ImageGrid)
		if err != nil {
			return fmt.Errorf("%s: %w", *imagePath, err)
		}
		log.Debug("extracted %d colors from %s", len(fromImage), *imagePath)
		inputs = append(inputs, fromImage...)
	}
	if len(inputs) == 0 {
		fs.Usage()
		return errors.New("no input colors")
	}

	var svc *service.SchemeService
	if *savedName != "" || *saveAs != "" {
		store, err := storage.NewStore(cfg.DataPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		svc = service.NewSchemeService(cfg, store, nil)
	}

	base := service.DefaultPalette
	switch {
	case *schemeFile != "":
		p, source, err := service.LoadScheme(*schemeFile)
		if err != nil {
			return err
		}
		log.Debug("loaded %s scheme from %s", source, *schemeFile)
		base = p
	case *savedName != "":
		if base, err = svc.ResolveBase(*savedName); err != nil {
			return err
		}
	}

	var out model.Palette
	if svc != nil {
		rec, err := svc.Mix(service.MixRequest{Inputs: inputs, Base: base, Options: opts, Contrast: *contrast})
		if err != nil {
			return err
		}
		if out, err = service.PaletteFromHex(rec.Result); err != nil {
			return err
		}
	} else {
		if out, err = service.Mix(inputs, base, opts); err != nil {
			return err
		}
		if *contrast {
			if out, err = service.BackgroundContrast(cfg, out); err != nil {
				return err
			}
		}
	}

	if *saveAs != "" {
		if _, err := svc.SaveScheme(*saveAs, out, model.SourceMix); err != nil {
			return err
		}
	}
	if *preview {
		fmt.Fprintln(stderr, service.RenderSwatches(out))
	}
	return writeScheme(stdout, *format, *saveAs, out)
}

func writeScheme(w io.Writer, format, name string, p model.Palette) error {
	switch strings.ToLower(format) {
	case "", "lines":
		return service.WriteLines(w, p)
	case "xrdb":
		return service.WriteXrdb(w, p)
	case "base16":
		if name == "" {
			name = "themer"
		}
		return service.WriteBase16(w, name, p)
	}
	return fmt.Errorf("unknown output format %q (valid: lines, xrdb, base16)", format)
}
