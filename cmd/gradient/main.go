// Command gradient prints linear colour gradients.
//
// With no mode flag it walks each consecutive pair of colours and wraps back
// to the first. -f fades each colour toward white and -d darkens it toward
// black, printing -r steps per input colour.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/agloo/themer/internal/logger"
	"github.com/agloo/themer/internal/model"
	"github.com/agloo/themer/internal/service"
)

var log = logger.New("gradient")

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		log.Fatal("%v", err)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("gradient", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fade := fs.Float64("f", 0, "amount to fade (0 is none at all and 1 is entirely white)")
	darken := fs.Float64("d", 0, "amount to darken (0 is none at all and 1 is entirely black)")
	res := fs.Int("r", 1, "number of output colors generated per input color")
	space := fs.String("space", "rgb", "interpolation space: rgb, hcl, lab or luv")
	preview := fs.Bool("preview", false, "draw the gradient as swatches on stderr")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: gradient [flags] color...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no colors given")
	}

	req := model.GradientRequest{Colors: fs.Args(), Mode: model.GradientCycle, Steps: *res, Space: *space}
	switch {
	case *fade != 0:
		req.Mode, req.Amount = model.GradientFade, *fade
	case *darken != 0:
		req.Mode, req.Amount = model.GradientDarken, *darken
	}

	colors, err := service.NewGradientService(nil).Generate(req)
	if err != nil {
		return err
	}
	for _, c := range colors {
		if _, err := fmt.Fprintln(stdout, c); err != nil {
			return err
		}
	}
	if *preview {
		rgb, err := service.ParseHexList(colors)
		if err != nil {
			return err
		}
		fmt.Fprint(stderr, service.RenderList(rgb))
	}
	return nil
}
