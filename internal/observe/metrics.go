// Package observe records embedding metrics through the OpenTelemetry
// Metrics API.
//
// [Metrics] implements specstego.Recorder. Tests and the CLI build it on an
// [sdkmetric.MeterProvider] with a ManualReader and read the totals back with
// [Summarize].
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/blues/specstego"
)

// meterName is the instrumentation scope name used for all metrics.
const meterName = "github.com/blues/specstego"

// Metric names.
const (
	FramesMetric          = "specstego.frames"
	PayloadBinsMetric     = "specstego.payload_bins"
	NoiseBinsMetric       = "specstego.noise_bins"
	ClippedSamplesMetric  = "specstego.clipped_samples"
	ChannelDurationMetric = "specstego.channel.duration"
)

// Metrics holds the OpenTelemetry instruments for an embedding run.
// All fields are safe for concurrent use.
type Metrics struct {
	// Frames counts processed spectral frames per channel.
	Frames metric.Int64Counter

	// PayloadBins counts bins that received a payload float.
	PayloadBins metric.Int64Counter

	// NoiseBins counts bins that received masking noise.
	NoiseBins metric.Int64Counter

	// ClippedSamples counts reconstructed samples clipped to [-1, 1].
	ClippedSamples metric.Int64Counter

	// ChannelDuration tracks wall time per channel.
	ChannelDuration metric.Float64Histogram
}

var _ specstego.Recorder = (*Metrics)(nil)

// durationBuckets defines histogram bucket boundaries in seconds.
var durationBuckets = []float64{
	0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

// NewMetrics creates a fully initialised [Metrics] using mp. Returns an error
// if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	if met.Frames, err = m.Int64Counter(FramesMetric,
		metric.WithDescription("Spectral frames embedded."),
	); err != nil {
		return nil, err
	}
	if met.PayloadBins, err = m.Int64Counter(PayloadBinsMetric,
		metric.WithDescription("Bins carrying a payload float."),
	); err != nil {
		return nil, err
	}
	if met.NoiseBins, err = m.Int64Counter(NoiseBinsMetric,
		metric.WithDescription("Bins perturbed by masking noise."),
	); err != nil {
		return nil, err
	}
	if met.ClippedSamples, err = m.Int64Counter(ClippedSamplesMetric,
		metric.WithDescription("Output samples clipped to [-1, 1]."),
	); err != nil {
		return nil, err
	}
	if met.ChannelDuration, err = m.Float64Histogram(ChannelDurationMetric,
		metric.WithDescription("Wall time to embed one channel."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(durationBuckets...),
	); err != nil {
		return nil, err
	}
	return met, nil
}

func channelAttr(c int) metric.MeasurementOption {
	return metric.WithAttributes(attribute.Int("channel", c))
}

// RecordFrame implements specstego.Recorder.
func (m *Metrics) RecordFrame(ctx context.Context, channel int, stats specstego.FrameStats) {
	attrs := channelAttr(channel)
	m.Frames.Add(ctx, 1, attrs)
	m.PayloadBins.Add(ctx, int64(stats.DataBins), attrs)
	m.NoiseBins.Add(ctx, int64(stats.NoiseBins), attrs)
}

// RecordChannel implements specstego.Recorder.
func (m *Metrics) RecordChannel(ctx context.Context, channel int, _ int, clipped int, elapsed time.Duration) {
	attrs := channelAttr(channel)
	m.ClippedSamples.Add(ctx, int64(clipped), attrs)
	m.ChannelDuration.Record(ctx, elapsed.Seconds(), attrs)
}

// Summarize collects reader and returns every counter summed across
// attributes, keyed by metric name. Histograms report their sample count
// under "<name>.count" and their sum under "<name>.sum".
func Summarize(ctx context.Context, reader *sdkmetric.ManualReader) (map[string]float64, error) {
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(ctx, &rm); err != nil {
		return nil, err
	}
	out := make(map[string]float64)
	for _, sm := range rm.ScopeMetrics {
		for _, met := range sm.Metrics {
			switch data := met.Data.(type) {
			case metricdata.Sum[int64]:
				for _, dp := range data.DataPoints {
					out[met.Name] += float64(dp.Value)
				}
			case metricdata.Sum[float64]:
				for _, dp := range data.DataPoints {
					out[met.Name] += dp.Value
				}
			case metricdata.Histogram[float64]:
				for _, dp := range data.DataPoints {
					out[met.Name+".count"] += float64(dp.Count)
					out[met.Name+".sum"] += dp.Sum
				}
			}
		}
	}
	return out, nil
}
