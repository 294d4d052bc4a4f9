package main

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/codegangsta/cli"
	"github.com/kevin-cantwell/askcii"
)

func main() {
	app := cli.NewApp()
	app.Version = "0.1.0"
	app.Name = "askcii"
	app.Usage = "A command-line tool for turning images, URLs and prompts into ASCII art."
	app.UsageText = "1) askcii create -u [file|url] [options]\n" +
		/*      */ "   2) askcii create -p [prompt] [options]"
	app.Commands = []cli.Command{
		{
			Name:   "create",
			Usage:  "Render ASCII art to stdout and to the output file.",
			Flags:  createFlags(),
			Action: create,
		},
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func createFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:  "url,u",
			Usage: "`URL` or path of the image file.",
		},
		cli.StringFlag{
			Name:  "prompt,p",
			Usage: "`PROMPT` used to generate the image with a diffusion model.",
		},
		cli.IntFlag{
			Name:  "width,w",
			Usage: "`WIDTH` in characters (default: image width).",
		},
		cli.IntFlag{
			Name:  "height,H",
			Usage: "`HEIGHT` in lines (default: image height, or kept in proportion to WIDTH).",
		},
		cli.IntFlag{
			Name:  "steps,s",
			Usage: "Number of inference `STEPS` for the diffusion model.",
			Value: askcii.DefaultSteps,
		},
		cli.StringFlag{
			Name:  "model,m",
			Usage: "Diffusion `MODEL` to use.",
			Value: askcii.DefaultModel,
		},
		cli.StringFlag{
			Name:  "output,o",
			Usage: "`FILE` the art is saved to.",
			Value: askcii.DefaultOutputPath,
		},
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML config `FILE` (default: ./askcii.yaml when present).",
		},
		cli.BoolFlag{
			Name:  "fit,f",
			Usage: "Scales the art down to fit the terminal.",
		},
		cli.BoolFlag{
			Name:  "play",
			Usage: "Animates gifs in the terminal. CTRL-C to quit.",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "Enables debug logging.",
		},
		cli.Float64Flag{
			Name:  "gamma,g",
			Usage: "`GAMMA` = 1.0 gives the original image. GAMMA less than 1.0 darkens the image and GAMMA greater than 1.0 lightens it.",
			Value: 1.0,
		},
		cli.Float64Flag{
			Name:  "brightness,b",
			Usage: "`BRIGHTNESS` = 0 gives the original image. BRIGHTNESS = -100 gives solid black image. BRIGHTNESS = 100 gives solid white image.",
		},
		cli.Float64Flag{
			Name:  "contrast,c",
			Usage: "`CONTRAST` = 0 gives the original image. CONTRAST = -100 gives solid grey image. CONTRAST = 100 gives maximum contrast.",
		},
		cli.Float64Flag{
			Name:  "sharpen",
			Usage: "`SHARPEN` = 0 gives the original image. SHARPEN greater than 0 sharpens the image.",
		},
		cli.BoolFlag{
			Name:  "invert,i",
			Usage: "Inverts the image.",
		},
		cli.Float64Flag{
			Name:  "sigmoid-midpoint",
			Usage: "`MIDPOINT` of contrast that must be between 0 and 1.",
			Value: 0.5,
		},
		cli.Float64Flag{
			Name:  "sigmoid-factor",
			Usage: "`FACTOR` = 0 gives the original image. FACTOR greater than 0 increases contrast. FACTOR less than 0 decreases contrast.",
		},
	}
}

func create(c *cli.Context) error {
	logger := newLogger(os.Stderr, c.Bool("verbose"))

	cfg, err := loadConfig(c.String("config"))
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	applyFlags(c, &cfg)
	if err := cfg.validate(); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	logger.Debug("Configuration loaded", "model", cfg.Model, "steps", cfg.Steps, "endpoint", cfg.Endpoint, "output", cfg.Output)

	ramp, _ := askcii.NewRamp(cfg.Ramp) // validated above
	opts := []askcii.RasterizerOpt{askcii.WithRamp(ramp)}
	if adj := adjustments(c); !adj.IsZero() {
		opts = append(opts, askcii.WithFilter(adj))
	}
	rast := askcii.NewRasterizer(opts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := &http.Client{Timeout: cfg.Timeout}
	desc, ok := descriptor(c, cfg)

	if c.Bool("play") && ok {
		err := play(ctx, c, logger, client, rast, desc)
		if err == nil || ctx.Err() != nil {
			return nil
		}
		logger.Error("Error playing gif", "err", err)
		logger.Warn("Rendering a still image instead.")
	}

	var img image.Image
	if !ok {
		logger.Info("Using default image.")
		img = askcii.DefaultImage()
	} else {
		img = acquire(ctx, logger, client, cfg, desc)
	}

	width, height := dimensions(img.Bounds(), c.Int("width"), c.Int("height"))
	if c.Bool("fit") {
		width, height = fit(logger, width, height)
	}
	logger.Debug("Rendering", "width", width, "height", height, "ramp", rast.Ramp())

	art, err := rast.Render(img, width, height)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	if err := askcii.NewFileSink(cfg.Output, os.Stdout).Deliver(art); err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	logger.Info("ASCII art saved", "path", cfg.Output)
	return nil
}

func acquire(ctx context.Context, logger *log.Logger, client *http.Client, cfg config, desc askcii.Descriptor) image.Image {
	sources := askcii.NewSources(client, &askcii.GenerationSource{Endpoint: cfg.Endpoint, Token: cfg.Token})

	if desc.Kind == askcii.KindPrompt {
		logger.Info("Loading model...", "model", desc.Model, "steps", desc.Steps)
	} else {
		logger.Info("Creating ASCII art", "from", desc.Location)
	}
	p := newProgress(logger)
	acq := askcii.Acquire(ctx, sources, desc)
	if acq.Fallback {
		logger.Error("Error loading image", "err", acq.Err)
		logger.Warn("Using default image as fallback.")
		return acq.Image
	}
	p.done("Image acquired", "width", acq.Image.Bounds().Dx(), "height", acq.Image.Bounds().Dy())
	return acq.Image
}

func play(ctx context.Context, c *cli.Context, logger *log.Logger, client *http.Client, rast *askcii.Rasterizer, desc askcii.Descriptor) error {
	giff, err := askcii.FetchGIF(ctx, client, desc)
	if err != nil {
		return err
	}
	bounds := image.Rect(0, 0, giff.Config.Width, giff.Config.Height)
	if bounds.Empty() && len(giff.Image) > 0 {
		bounds = giff.Image[0].Bounds()
	}
	width, height := dimensions(bounds, c.Int("width"), c.Int("height"))
	if c.Bool("fit") {
		width, height = fit(logger, width, height)
	}
	logger.Debug("Playing gif", "frames", len(giff.Image), "loops", giff.LoopCount)
	return askcii.PlayGIF(ctx, os.Stdout, giff, rast, width, height)
}

// descriptor picks the image to acquire. A URL wins over a prompt; neither
// means the default image.
func descriptor(c *cli.Context, cfg config) (askcii.Descriptor, bool) {
	if u := c.String("url"); u != "" {
		return askcii.ParseDescriptor(u), true
	}
	if p := c.String("prompt"); p != "" {
		return askcii.PromptDescriptor(p, cfg.Model, cfg.Steps), true
	}
	return askcii.Descriptor{}, false
}

func adjustments(c *cli.Context) askcii.Adjustments {
	var adj askcii.Adjustments
	if c.IsSet("gamma") {
		adj.Gamma = c.Float64("gamma")
	}
	if c.IsSet("brightness") {
		adj.Brightness = c.Float64("brightness")
	}
	if c.IsSet("contrast") {
		adj.Contrast = c.Float64("contrast")
	}
	if c.IsSet("sharpen") {
		adj.Sharpen = c.Float64("sharpen")
	}
	if c.IsSet("sigmoid-midpoint") || c.IsSet("sigmoid-factor") {
		adj.SigmoidMidpoint = c.Float64("sigmoid-midpoint")
		adj.SigmoidFactor = c.Float64("sigmoid-factor")
	}
	adj.Invert = c.Bool("invert")
	return adj
}

// dimensions fills in missing target dimensions. Zero for both keeps the
// source size; zero for one keeps the source aspect ratio. Negative values are
// passed through so that rendering rejects them.
func dimensions(bounds image.Rectangle, width, height int) (int, int) {
	srcW, srcH := bounds.Dx(), bounds.Dy()
	switch {
	case width == 0 && height == 0:
		return srcW, srcH
	case height == 0 && width > 0 && srcW > 0:
		return width, atLeastOne(width * srcH / srcW)
	case width == 0 && height > 0 && srcH > 0:
		return atLeastOne(height * srcW / srcH), height
	}
	return width, height
}

func atLeastOne(n int) int {
	if n < 1 {
		return 1
	}
	return n
}

func fit(logger *log.Logger, width, height int) (int, int) {
	cols, lines, err := askcii.TerminalSize(int(os.Stderr.Fd()))
	if err != nil {
		logger.Debug("Terminal size unavailable", "err", err)
		cols, lines = 80, 25 // Small, but a pretty standard default
	}
	scale := askcii.FitScale(width, height, cols, lines)
	return atLeastOne(int(float64(width) * scale)), atLeastOne(int(float64(height) * scale))
}
