// Command stegenc hides a short payload in the spectrum of a WAV file.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"os/signal"
	"sort"
	"syscall"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/blues/specstego"
	"github.com/blues/specstego/internal/config"
	"github.com/blues/specstego/internal/observe"
	"github.com/blues/specstego/internal/wavio"
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] InputWavFile OutputWavFile\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "e.g.                 %s song.wav out.wav\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "e.g. (reproducible)  %s -seed 42 -payload hi song.wav out.wav\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "path to a YAML configuration file")
	payload := flag.String("payload", "", "payload text (overrides config)")
	seed := flag.Uint64("seed", 0, "random seed (overrides config)")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() != 2 {
		usage()
		return 2
	}
	inputFile, outputFile := flag.Arg(0), flag.Arg(1)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		if cfg, err = config.Load(*configPath); err != nil {
			fmt.Fprintf(os.Stderr, "stegenc: %v\n", err)
			return 1
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "payload":
			cfg.Payload = *payload
		case "seed":
			cfg.Seed = seed
		}
	})

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	audio, err := wavio.ReadFile(inputFile)
	if err != nil {
		slog.Error("failed to read input", "file", inputFile, "err", err)
		return 1
	}
	slog.Info("input loaded",
		"file", inputFile,
		"sample_rate", audio.SampleRate,
		"bits", audio.BitsPerSample,
		"channels", len(audio.Channels),
		"frames", audio.Frames(),
	)

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	defer func() { _ = mp.Shutdown(context.Background()) }()
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		slog.Error("failed to create metrics", "err", err)
		return 1
	}

	opts := cfg.Options(rand.Uint64())
	opts.Recorder = metrics
	opts.Logger = logger

	out, err := specstego.EmbedChannels(ctx, audio.Channels, audio.SampleRate, opts)
	if err != nil {
		slog.Error("embedding failed", "err", err)
		return 1
	}
	slog.Info("operation completed")

	result := &wavio.Audio{
		SampleRate:    audio.SampleRate,
		BitsPerSample: cfg.OutputBits,
		Channels:      out,
	}
	if err := wavio.WriteFile(outputFile, result, cfg.OutputBits); err != nil {
		slog.Error("failed to write output", "file", outputFile, "err", err)
		return 1
	}
	slog.Info("audio written", "file", outputFile, "bits", cfg.OutputBits)

	logSummary(ctx, reader)
	return 0
}

// logSummary logs every collected metric total, sorted by name.
func logSummary(ctx context.Context, reader *sdkmetric.ManualReader) {
	totals, err := observe.Summarize(ctx, reader)
	if err != nil {
		slog.Warn("failed to collect metrics", "err", err)
		return
	}
	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		slog.Info("metric", "name", name, "value", totals[name])
	}
}

func newLogger(level config.LogLevel) *slog.Logger {
	var lvl slog.Level
	switch level {
	case config.LogDebug:
		lvl = slog.LevelDebug
	case config.LogWarn:
		lvl = slog.LevelWarn
	case config.LogError:
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
}
