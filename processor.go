// SPDX-License-Identifier: EPL-2.0

package voxclean

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/convert"
	"github.com/ik5/voxclean/encode"
	"github.com/ik5/voxclean/filter"
	"github.com/ik5/voxclean/formats"
)

// Pipeline stages as reported to a Recorder. These are the only stage label
// values the metrics carry.
const (
	StageDecode  = "decode"
	StageRender  = "render"
	StageEncode  = "encode"
	StageConvert = "convert"
)

// Recorder receives pipeline measurements.
type Recorder interface {
	ObserveStage(stage string, start time.Time)
	StageFailed(stage string)
	ClipProcessed()
	ObserveDrift(d time.Duration)
	Conversion(format string, err error)
}

type nopRecorder struct{}

func (nopRecorder) ObserveStage(string, time.Time) {}
func (nopRecorder) StageFailed(string)             {}
func (nopRecorder) ClipProcessed()                 {}
func (nopRecorder) ObserveDrift(time.Duration)     {}
func (nopRecorder) Conversion(string, error)       {}

// Processor runs clips through decode, render and encode, and exports them.
// It is safe for concurrent use; concurrent requests share only the encoder
// device, the registry and the recorder.
type Processor struct {
	registry   *audio.Registry
	encoder    encode.Encoder
	converter  convert.Converter
	logger     *slog.Logger
	recorder   Recorder
	sampleRate int
}

type Option func(*Processor)

// WithRegistry replaces the built-in decoders.
func WithRegistry(r *audio.Registry) Option {
	return func(p *Processor) { p.registry = r }
}

// WithEncoder replaces the real-time bridge.
func WithEncoder(e encode.Encoder) Option {
	return func(p *Processor) { p.encoder = e }
}

// WithConverter replaces the default native/ffmpeg router.
func WithConverter(c convert.Converter) Option {
	return func(p *Processor) { p.converter = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

func WithMetrics(r Recorder) Option {
	return func(p *Processor) { p.recorder = r }
}

// WithSampleRate resamples decoded clips to rate Hz. Zero keeps the clip's
// own rate.
func WithSampleRate(rate int) Option {
	return func(p *Processor) { p.sampleRate = rate }
}

// New returns a Processor. Without options it decodes every built-in format,
// encodes through a real-time encode.Bridge and converts with the native
// engine, falling back to ffmpeg.
func New(opts ...Option) *Processor {
	p := &Processor{}
	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.New(slog.DiscardHandler)
	}
	if p.recorder == nil {
		p.recorder = nopRecorder{}
	}
	if p.registry == nil {
		p.registry = formats.DefaultRegistry()
	}
	if p.encoder == nil {
		p.encoder = encode.NewBridge(encode.WithLogger(p.logger))
	}
	if p.converter == nil {
		p.converter = &convert.Router{
			Native:   convert.NewNative(p.registry),
			Fallback: convert.NewFFmpeg("", 0, p.logger),
		}
	}

	return p
}

// Decode detects the container of data and decodes it to PCM. Failures are
// *audio.DecodeError.
func (p *Processor) Decode(data []byte) (*audio.Buffer, error) {
	start := time.Now()

	kind := formats.Sniff(data[:min(len(data), formats.HeaderSize)])
	if kind == "" {
		if _, ok := p.registry.Get(formats.Fallback); ok {
			kind = formats.Fallback
		}
	}

	buf, err := p.registry.Decode(kind, bytes.NewReader(data))
	if err != nil {
		p.recorder.StageFailed(StageDecode)
		p.logger.Error("decode failed", slog.String("format", kind), slog.String("error", err.Error()))
		return nil, err
	}

	if p.sampleRate > 0 && buf.SampleRate != p.sampleRate {
		p.logger.Debug("resampling decoded clip",
			slog.Int("from", buf.SampleRate),
			slog.Int("to", p.sampleRate),
		)
		buf = audio.Resample(buf, p.sampleRate)
	}

	p.recorder.ObserveStage(StageDecode, start)
	p.logger.Debug("decoded clip",
		slog.String("format", kind),
		slog.Int("channels", buf.Channels()),
		slog.Int("sample_rate", buf.SampleRate),
		slog.Int("frames", buf.Frames()),
	)

	return buf, nil
}

// ProcessBuffer renders buf with opts. The input buffer is left as is.
func (p *Processor) ProcessBuffer(buf *audio.Buffer, opts filter.Options) filter.Result {
	return p.renderChain(buf, filter.Compile(opts))
}

func (p *Processor) renderChain(buf *audio.Buffer, chain filter.Chain) filter.Result {
	start := time.Now()

	out := filter.Render(buf, chain)

	p.recorder.ObserveStage(StageRender, start)
	p.logger.Debug("rendered clip",
		slog.String("chain", chain.String()),
		slog.Duration("took", time.Since(start)),
	)

	return filter.Result{Buffer: out, Duration: out.Duration()}
}

// Process decodes data, applies opts and re-encodes the result. The stages
// run strictly one after the other; on failure no clip is returned.
func (p *Processor) Process(ctx context.Context, data []byte, opts filter.Options) (*encode.Clip, error) {
	return p.ProcessChain(ctx, data, filter.Compile(opts))
}

// QuickCleanup runs data through the one-click noise reduction preset
// (filter.QuickCleanup) and re-encodes it like Process.
func (p *Processor) QuickCleanup(ctx context.Context, data []byte) (*encode.Clip, error) {
	return p.ProcessChain(ctx, data, filter.QuickCleanup())
}

// ProcessChain decodes data, renders it through chain and re-encodes it.
func (p *Processor) ProcessChain(ctx context.Context, data []byte, chain filter.Chain) (*encode.Clip, error) {
	buf, err := p.Decode(data)
	if err != nil {
		return nil, err
	}

	res := p.renderChain(buf, chain)

	start := time.Now()
	clip, err := p.encoder.Encode(ctx, res.Buffer)
	if err != nil {
		p.recorder.StageFailed(StageEncode)
		p.logger.Error("encode failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("encoding processed clip: %w", err)
	}
	p.recorder.ObserveStage(StageEncode, start)

	if drift := clip.Captured - res.Duration; drift > 0 {
		p.recorder.ObserveDrift(drift)
	}
	p.recorder.ClipProcessed()

	p.logger.Info("clip processed",
		slog.Duration("duration", res.Duration),
		slog.Duration("captured", clip.Captured),
		slog.String("mime_type", clip.MIMEType),
		slog.Int("bytes", len(clip.Data)),
	)

	return clip, nil
}

// Export converts clip to target. Failures are *convert.ConversionError and
// are not retried; clip stays usable for another attempt.
func (p *Processor) Export(ctx context.Context, clip *encode.Clip, target convert.Format) (*encode.Clip, error) {
	start := time.Now()

	out, err := p.converter.Convert(ctx, clip, target)
	p.recorder.Conversion(target.String(), err)
	if err != nil {
		p.recorder.StageFailed(StageConvert)
		p.logger.Error("export failed",
			slog.String("format", target.String()),
			slog.String("error", err.Error()),
		)
		return nil, err
	}
	p.recorder.ObserveStage(StageConvert, start)

	p.logger.Info("clip exported",
		slog.String("format", target.String()),
		slog.Int("bytes", len(out.Data)),
	)

	return out, nil
}

// ProcessClip reads a whole clip from r and processes it with the default
// decoders and the sample-accurate offline encoder.
func ProcessClip(r io.Reader, opts filter.Options) (*encode.Clip, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &audio.DecodeError{Err: fmt.Errorf("reading clip: %w", err)}
	}

	return New(WithEncoder(encode.Offline{})).Process(context.Background(), data, opts)
}
