// SPDX-License-Identifier: EPL-2.0

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"

	"github.com/ik5/voxclean"
	"github.com/ik5/voxclean/convert"
	"github.com/ik5/voxclean/encode"
	"github.com/ik5/voxclean/filter"
	"github.com/ik5/voxclean/formats"
	"github.com/ik5/voxclean/formats/ffmpeg"
	"github.com/ik5/voxclean/internal/cli"
	"github.com/ik5/voxclean/internal/config"
	"github.com/ik5/voxclean/internal/logging"
	"github.com/ik5/voxclean/internal/metrics"
)

var version = "0.1.0"

type versionFlag bool

func (versionFlag) BeforeApply(app *kong.Kong) error {
	cli.PrintVersion(app.Stdout, version)
	app.Exit(0)
	return nil
}

// CLI defines the command-line interface
type CLI struct {
	Version     versionFlag `short:"v" help:"Show version information"`
	Config      string      `short:"c" type:"path" help:"Path to YAML config file (optional)"`
	MetricsFile string      `type:"path" help:"Write Prometheus metrics to this file on exit"`

	Process processCmd `cmd:"" help:"Clean up a voice clip and write the result"`
	Convert convertCmd `cmd:"" help:"Convert a clip to another format"`
}

type processCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Recorded clip (wav, aiff, mp3, ogg; anything else through ffmpeg)"`
	Output string `short:"o" required:"" type:"path" help:"Output file"`

	Quick bool `short:"q" help:"One-click noise reduction: cut rumble and everything above 3 kHz, ignoring the tuning flags"`

	NoiseReduction   *float64 `help:"Noise reduction amount, 0 to 1"`
	RemoveBackground *bool    `help:"Cut low-frequency rumble and hum"`
	Gain             *float64 `help:"Linear gain, 0 to 2"`
	Clarity          *float64 `help:"Presence boost around 3 kHz, 0 to 1"`
	Format           string   `short:"f" help:"Output format (default: from output extension)"`
	Realtime         *bool    `help:"Re-encode in real time like a capture device"`
}

type convertCmd struct {
	Input  string `arg:"" type:"existingfile" help:"Clip to convert"`
	Output string `short:"o" required:"" type:"path" help:"Output file"`
	Format string `short:"f" help:"Output format (default: from output extension)"`
}

// app carries what every command needs.
type app struct {
	ctx     context.Context
	cfg     *config.Config
	logger  *slog.Logger
	metrics *metrics.Metrics
	stdout  io.Writer
}

func main() {
	cliArgs := &CLI{}
	kctx := kong.Parse(cliArgs,
		kong.Name("voxclean"),
		kong.Description("Voice clip cleanup: noise reduction, background removal, gain and clarity"),
		kong.UsageOnError(),
	)

	os.Exit(run(kctx, cliArgs))
}

func run(kctx *kong.Context, cliArgs *CLI) int {
	cfg := config.Default()
	if cliArgs.Config != "" {
		loaded, err := config.Load(cliArgs.Config)
		if err != nil {
			cli.PrintError(os.Stderr, err.Error())
			return 1
		}
		cfg = loaded
	}

	logger, closeLog, err := logging.New(cfg.Logging)
	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		return 1
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &app{ctx: ctx, cfg: cfg, logger: logger, metrics: metrics.New(), stdout: os.Stdout}

	err = kctx.Run(a)

	if cliArgs.MetricsFile != "" {
		if werr := a.metrics.WriteTextfile(cliArgs.MetricsFile); werr != nil {
			logger.Error("Failed to write metrics file",
				slog.String("path", cliArgs.MetricsFile),
				slog.String("error", werr.Error()),
			)
		}
	}

	if err != nil {
		cli.PrintError(os.Stderr, err.Error())
		return 1
	}

	return 0
}

func (a *app) processor(realtime bool) *voxclean.Processor {
	var enc encode.Encoder = encode.Offline{BitDepth: a.cfg.Encode.BitDepth}
	if realtime {
		enc = encode.NewBridge(
			encode.WithChunkDuration(a.cfg.Encode.ChunkDuration()),
			encode.WithBitDepth(a.cfg.Encode.BitDepth),
			encode.WithLogger(a.logger),
		)
	}

	reg := formats.NewRegistry(ffmpeg.Decoder{
		Path:    a.cfg.Convert.FFmpegPath,
		Timeout: a.cfg.Convert.TimeoutDuration(),
	})

	return voxclean.New(
		voxclean.WithRegistry(reg),
		voxclean.WithEncoder(enc),
		voxclean.WithConverter(&convert.Router{
			Native:   convert.NewNative(reg),
			Fallback: convert.NewFFmpeg(a.cfg.Convert.FFmpegPath, a.cfg.Convert.TimeoutDuration(), a.logger),
		}),
		voxclean.WithLogger(a.logger),
		voxclean.WithMetrics(a.metrics),
		voxclean.WithSampleRate(a.cfg.Decode.SampleRate),
	)
}

// targetFormat picks the explicit format, then the output extension, then WAV.
func targetFormat(explicit, output string) (convert.Format, error) {
	if explicit != "" {
		return convert.ParseFormat(explicit)
	}

	if f, err := convert.ParseFormat(filepath.Ext(output)); err == nil {
		return f, nil
	}

	return convert.WAV, nil
}

func (c *processCmd) options(base filter.Options) filter.Options {
	if c.NoiseReduction != nil {
		base.NoiseReduction = *c.NoiseReduction
	}
	if c.RemoveBackground != nil {
		base.RemoveBackground = *c.RemoveBackground
	}
	if c.Gain != nil {
		base.Gain = *c.Gain
	}
	if c.Clarity != nil {
		base.Clarity = *c.Clarity
	}

	return base.Clamp()
}

func (c *processCmd) Run(a *app) error {
	target, err := targetFormat(c.Format, c.Output)
	if err != nil {
		return err
	}

	realtime := a.cfg.Encode.Mode == config.ModeRealtime
	if c.Realtime != nil {
		realtime = *c.Realtime
	}

	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	opts := c.options(a.cfg.Processing)
	chain := filter.Compile(opts)
	if c.Quick {
		chain = filter.QuickCleanup()
	}
	p := a.processor(realtime)

	start := time.Now()
	clip, err := p.ProcessChain(a.ctx, data, chain)
	if err != nil {
		return err
	}

	if target != convert.WAV {
		clip, err = p.Export(a.ctx, clip, target)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(c.Output, clip.Data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	cli.PrintResult(a.stdout, "Processed", []cli.Field{
		{Key: "Input", Value: c.Input},
		{Key: "Output", Value: c.Output},
		{Key: "Chain", Value: chain.String()},
		{Key: "Format", Value: target.String()},
		{Key: "Captured", Value: clip.Captured.String()},
		{Key: "Took", Value: time.Since(start).Round(time.Millisecond).String()},
	})

	return nil
}

func (c *convertCmd) Run(a *app) error {
	target, err := targetFormat(c.Format, c.Output)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(c.Input)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}

	clip := &encode.Clip{Data: data}
	out, err := a.processor(false).Export(a.ctx, clip, target)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.Output, out.Data, 0o644); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	cli.PrintResult(a.stdout, "Converted", []cli.Field{
		{Key: "Input", Value: c.Input},
		{Key: "Output", Value: c.Output},
		{Key: "Format", Value: target.String()},
		{Key: "Size", Value: fmt.Sprintf("%d bytes", len(out.Data))},
	})

	return nil
}
