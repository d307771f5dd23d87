// SPDX-License-Identifier: EPL-2.0

package voxclean

import (
	"bytes"
	"context"
	"errors"
	"io"
	"slices"
	"testing"
	"testing/iotest"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/ik5/voxclean/audio"
	"github.com/ik5/voxclean/convert"
	"github.com/ik5/voxclean/encode"
	"github.com/ik5/voxclean/filter"
	"github.com/ik5/voxclean/formats"
	"github.com/ik5/voxclean/formats/wav"
	"github.com/ik5/voxclean/internal/audiotest"
	"github.com/ik5/voxclean/internal/metrics"
)

func voiceWAV(t *testing.T, rate, channels int, d time.Duration) []byte {
	t.Helper()

	frames := int(time.Duration(rate) * d / time.Second)
	buf := audio.NewBuffer(channels, rate, frames)
	for c := range buf.Data {
		copy(buf.Data[c], audiotest.Sine(rate, frames, 300*float64(c+1), 0.4))
	}

	data, err := wav.EncodeBytes(buf, 16)
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}

	return data
}

func decodeWAV(t *testing.T, data []byte) *audio.Buffer {
	t.Helper()

	src, err := wav.Decoder{}.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}

	buf, err := audio.ReadBuffer(src)
	if err != nil {
		t.Fatalf("reading: %v", err)
	}

	return buf
}

func toneWAV(t *testing.T, rate int, freq float64, d time.Duration) []byte {
	t.Helper()

	frames := int(time.Duration(rate) * d / time.Second)
	buf := audio.NewBuffer(1, rate, frames)
	copy(buf.Data[0], audiotest.Sine(rate, frames, freq, 0.4))

	data, err := wav.EncodeBytes(buf, 16)
	if err != nil {
		t.Fatalf("EncodeBytes() error = %v", err)
	}

	return data
}

var speechOpts = filter.Options{NoiseReduction: 0.5, RemoveBackground: true, Gain: 1, Clarity: 0.5}

func TestProcessor_ProcessOffline(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	p := New(WithEncoder(encode.Offline{}), WithMetrics(m))

	clip, err := p.Process(context.Background(), voiceWAV(t, 16000, 2, 200*time.Millisecond), speechOpts)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	out := decodeWAV(t, clip.Data)
	if out.SampleRate != 16000 || out.Channels() != 2 || out.Frames() != 3200 {
		t.Errorf("output = %dch x %d @ %d, want 2ch x 3200 @ 16000", out.Channels(), out.Frames(), out.SampleRate)
	}

	if got := testutil.ToFloat64(m.ClipsProcessed); got != 1 {
		t.Errorf("clips processed = %v, want 1", got)
	}
}

func TestProcessor_ProcessRealtime(t *testing.T) {
	t.Parallel()

	p := New()
	data := voiceWAV(t, 8000, 1, 100*time.Millisecond)

	start := time.Now()
	clip, err := p.Process(context.Background(), data, speechOpts)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if clip.Captured < 100*time.Millisecond || time.Since(start) < 100*time.Millisecond {
		t.Errorf("Captured = %v, elapsed %v; want >= 100ms", clip.Captured, time.Since(start))
	}
	if len(clip.Data) == 0 || clip.MIMEType != "audio/wav" {
		t.Errorf("clip = %d bytes of %q", len(clip.Data), clip.MIMEType)
	}
}

func TestProcessor_DecodeErrors(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	p := New(WithEncoder(encode.Offline{}), WithMetrics(m))

	tests := []struct {
		name string
		data []byte
	}{
		{"empty", nil},
		{"text", []byte("this is a text file, not audio")},
		{"truncated wav", []byte("RIFF\x24\x00\x00\x00WAVE")},
	}

	for _, tt := range tests {
		clip, err := p.Process(context.Background(), tt.data, speechOpts)
		if !errors.Is(err, audio.ErrDecode) {
			t.Errorf("%s: Process() error = %v, want ErrDecode", tt.name, err)
		}

		var derr *audio.DecodeError
		if !errors.As(err, &derr) {
			t.Errorf("%s: error %T is not *audio.DecodeError", tt.name, err)
		}
		if clip != nil {
			t.Errorf("%s: got a clip on failure", tt.name)
		}
	}

	if got := testutil.ToFloat64(m.PipelineErrors.WithLabelValues(StageDecode)); got != float64(len(tests)) {
		t.Errorf("decode errors = %v, want %d", got, len(tests))
	}
}

type failingEncoder struct{}

func (failingEncoder) Encode(context.Context, *audio.Buffer) (*encode.Clip, error) {
	return nil, encode.ErrEncode
}

func TestProcessor_EncodeError(t *testing.T) {
	t.Parallel()

	p := New(WithEncoder(failingEncoder{}))

	clip, err := p.Process(context.Background(), voiceWAV(t, 8000, 1, 10*time.Millisecond), speechOpts)
	if !errors.Is(err, encode.ErrEncode) || clip != nil {
		t.Errorf("Process() = %v, %v; want nil, ErrEncode", clip, err)
	}
}

func TestProcessor_SampleRate(t *testing.T) {
	t.Parallel()

	p := New(WithSampleRate(16000))

	buf, err := p.Decode(voiceWAV(t, 8000, 1, 100*time.Millisecond))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if buf.SampleRate != 16000 || buf.Frames() != 1600 {
		t.Errorf("decoded %d frames @ %d, want 1600 @ 16000", buf.Frames(), buf.SampleRate)
	}
}

func TestProcessor_ProcessBuffer(t *testing.T) {
	t.Parallel()

	buf := audio.NewBuffer(1, 44100, 2*44100)
	res := New().ProcessBuffer(buf, speechOpts)

	if !res.Buffer.SameShape(buf) || res.Duration != 2*time.Second {
		t.Errorf("result = %dch x %d, %v", res.Buffer.Channels(), res.Buffer.Frames(), res.Duration)
	}
	if audiotest.Peak(res.Buffer.Data[0], 0) != 0 {
		t.Error("silence did not stay silent")
	}
}

type stubConverter struct {
	err   error
	calls int
}

func (s *stubConverter) Convert(_ context.Context, clip *encode.Clip, target convert.Format) (*encode.Clip, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	return &encode.Clip{Data: clip.Data, MIMEType: target.MIMEType()}, nil
}

func TestProcessor_Export(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	p := New(WithEncoder(encode.Offline{}), WithMetrics(m))

	clip, err := p.Process(context.Background(), voiceWAV(t, 8000, 1, 50*time.Millisecond), speechOpts)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	out, err := p.Export(context.Background(), clip, convert.WAV)
	if err != nil {
		t.Fatalf("Export(wav) error = %v", err)
	}
	if out.MIMEType != "audio/wav" || len(out.Data) == 0 {
		t.Errorf("export = %d bytes of %q", len(out.Data), out.MIMEType)
	}

	if got := testutil.ToFloat64(m.Conversions.WithLabelValues("wav", "success")); got != 1 {
		t.Errorf("wav conversions = %v, want 1", got)
	}
}

func TestProcessor_ExportFailureNoRetry(t *testing.T) {
	t.Parallel()

	stub := &stubConverter{err: &convert.ConversionError{Format: convert.MP3, Err: errors.New("engine missing")}}
	m := metrics.New()
	p := New(WithConverter(stub), WithMetrics(m))

	clip := &encode.Clip{Data: []byte("processed"), MIMEType: "audio/wav"}

	out, err := p.Export(context.Background(), clip, convert.MP3)
	if !errors.Is(err, convert.ErrConversion) || out != nil {
		t.Fatalf("Export() = %v, %v; want nil, ConversionError", out, err)
	}

	if stub.calls != 1 {
		t.Errorf("converter called %d times, want 1", stub.calls)
	}
	if string(clip.Data) != "processed" {
		t.Error("processed clip changed after failed export")
	}
	if got := testutil.ToFloat64(m.Conversions.WithLabelValues("mp3", "failure")); got != 1 {
		t.Errorf("mp3 failures = %v, want 1", got)
	}
}

func TestProcessClip(t *testing.T) {
	t.Parallel()

	data := voiceWAV(t, 22050, 1, 100*time.Millisecond)

	clip, err := ProcessClip(bytes.NewReader(data), speechOpts)
	if err != nil {
		t.Fatalf("ProcessClip() error = %v", err)
	}

	if out := decodeWAV(t, clip.Data); out.Frames() != 2205 {
		t.Errorf("Frames() = %d, want 2205", out.Frames())
	}
}

func TestProcessClip_ReadError(t *testing.T) {
	t.Parallel()

	_, err := ProcessClip(iotest.ErrReader(io.ErrUnexpectedEOF), speechOpts)
	if !errors.Is(err, audio.ErrDecode) || !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("ProcessClip() error = %v, want ErrDecode wrapping ErrUnexpectedEOF", err)
	}
}

func TestProcessor_QuickCleanup(t *testing.T) {
	t.Parallel()

	const (
		rate   = 22050
		settle = 2000
	)

	tests := []struct {
		name     string
		freq     float64
		minRatio float64
		maxRatio float64
	}{
		{name: "hum", freq: 50, minRatio: 0, maxRatio: 0.3},
		{name: "voice", freq: 1000, minRatio: 0.7, maxRatio: 1.3},
		{name: "hiss", freq: 8000, minRatio: 0, maxRatio: 0.3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := metrics.New()
			p := New(WithEncoder(encode.Offline{}), WithMetrics(m))

			data := toneWAV(t, rate, tt.freq, 500*time.Millisecond)
			clip, err := p.QuickCleanup(context.Background(), data)
			if err != nil {
				t.Fatalf("QuickCleanup() error = %v", err)
			}

			in := decodeWAV(t, data)
			out := decodeWAV(t, clip.Data)
			if !out.SameShape(in) || out.SampleRate != rate {
				t.Fatalf("output = %dch x %d @ %d, want 1ch x %d @ %d",
					out.Channels(), out.Frames(), out.SampleRate, in.Frames(), rate)
			}

			ratio := audiotest.RMS(out.Data[0], settle) / audiotest.RMS(in.Data[0], settle)
			if ratio < tt.minRatio || ratio > tt.maxRatio {
				t.Errorf("%v Hz output/input RMS = %.3f, want in [%v, %v]", tt.freq, ratio, tt.minRatio, tt.maxRatio)
			}

			if got := testutil.ToFloat64(m.ClipsProcessed); got != 1 {
				t.Errorf("clips processed = %v, want 1", got)
			}
		})
	}
}

func TestProcessor_ProcessChainMatchesProcess(t *testing.T) {
	t.Parallel()

	p := New(WithEncoder(encode.Offline{}))
	data := voiceWAV(t, 16000, 1, 100*time.Millisecond)

	a, err := p.Process(context.Background(), data, speechOpts)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	b, err := p.ProcessChain(context.Background(), data, filter.Compile(speechOpts))
	if err != nil {
		t.Fatalf("ProcessChain() error = %v", err)
	}

	if !bytes.Equal(a.Data, b.Data) {
		t.Error("ProcessChain(Compile(opts)) differs from Process(opts)")
	}
}

// countingDecoder yields 160 frames of silence for any input.
type countingDecoder struct {
	calls *int
}

func (d countingDecoder) Decode(io.Reader) (audio.Source, error) {
	*d.calls++
	return audiotest.NewSilentSource(16000, 1, 160), nil
}

func TestProcessor_DecodeExternalFormats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data []byte
	}{
		{name: "webm", data: []byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F, 0x42, 0x86, 0x81, 0x01, 0x42, 0xF7, 0x81}},
		{name: "m4a", data: []byte("\x00\x00\x00\x20ftypM4A \x00\x00\x00\x00")},
		{name: "flac", data: []byte("fLaC\x00\x00\x00\x22\x10\x00\x10\x00")},
		{name: "unrecognized", data: []byte("\x00\x01\x02\x03 no known magic")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var calls int
			p := New(WithRegistry(formats.NewRegistry(countingDecoder{calls: &calls})))

			buf, err := p.Decode(tt.data)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if buf.Frames() != 160 || calls != 1 {
				t.Errorf("decoded %d frames in %d calls, want 160 in 1", buf.Frames(), calls)
			}
		})
	}
}

func TestProcessor_DecodeWithoutFallback(t *testing.T) {
	t.Parallel()

	p := New(WithRegistry(formats.NewRegistry(nil)))

	_, err := p.Decode([]byte{0x1A, 0x45, 0xDF, 0xA3, 0x9F, 0x42, 0x86, 0x81})
	if !errors.Is(err, audio.ErrUnknownFormat) {
		t.Errorf("Decode() error = %v, want ErrUnknownFormat", err)
	}
}

func TestProcessor_StageLabels(t *testing.T) {
	t.Parallel()

	m := metrics.New()
	p := New(WithEncoder(encode.Offline{}), WithMetrics(m))

	clip, err := p.Process(context.Background(), voiceWAV(t, 8000, 1, 20*time.Millisecond), speechOpts)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if _, err := p.Export(context.Background(), clip, convert.WAV); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	families, err := m.Registry().Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var stages []string
	for _, mf := range families {
		if mf.GetName() != "voxclean_stage_duration_seconds" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				stages = append(stages, label.GetValue())
			}
		}
	}
	slices.Sort(stages)

	want := []string{StageConvert, StageDecode, StageEncode, StageRender}
	if !slices.Equal(stages, want) {
		t.Errorf("stage labels = %v, want %v", stages, want)
	}

	failing := New(WithEncoder(failingEncoder{}), WithMetrics(m))
	if _, err := failing.Process(context.Background(), voiceWAV(t, 8000, 1, 20*time.Millisecond), speechOpts); err == nil {
		t.Fatal("Process() error = nil, want encode failure")
	}
	if got := testutil.ToFloat64(m.PipelineErrors.WithLabelValues(StageEncode)); got != 1 {
		t.Errorf("encode errors = %v, want 1", got)
	}
}
