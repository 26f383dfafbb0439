// Package metrics exposes Prometheus counters and gauges for the stream
// reactor. The protocol library itself has no opinion on whether metrics
// are exported anywhere; callers supply a prometheus.Registerer (or nil to
// disable collection entirely) when constructing a Client.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Reactor holds the counters/gauges a single connection's reactor updates
// every cycle (spec.md §4.E). A nil *Reactor is safe to call methods on;
// every method is a no-op in that case, so embedders that never pass a
// Registerer pay nothing for this package: NewReactor then returns nil
// without allocating.
type Reactor struct {
	CommandsSent        prometheus.Counter
	RepliesReceived      prometheus.Counter
	ErrorsReceived        prometheus.Counter
	PlaybackBytesRequested prometheus.Counter
	PlaybackBytesSent     prometheus.Counter
	RecordBytesDelivered  prometheus.Counter
	ReactorCycles         prometheus.Counter
	PlaybackStreams       prometheus.Gauge
	RecordStreams         prometheus.Gauge
}

// NewReactor builds and registers a Reactor's metrics against reg. If reg is
// nil, it returns a nil *Reactor, on which every method below is a no-op —
// metrics are strictly opt-in.
func NewReactor(reg prometheus.Registerer, connID string) *Reactor {
	if reg == nil {
		return nil
	}
	labels := prometheus.Labels{"conn_id": connID}
	m := &Reactor{
		CommandsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pulse_commands_sent_total",
			Help:        "Total control commands sent to the server.",
			ConstLabels: labels,
		}),
		RepliesReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pulse_replies_received_total",
			Help:        "Total Reply/Error envelopes received from the server.",
			ConstLabels: labels,
		}),
		ErrorsReceived: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pulse_errors_received_total",
			Help:        "Total Error envelopes received from the server.",
			ConstLabels: labels,
		}),
		PlaybackBytesRequested: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pulse_playback_bytes_requested_total",
			Help:        "Total bytes requested via server Request notifications.",
			ConstLabels: labels,
		}),
		PlaybackBytesSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pulse_playback_bytes_sent_total",
			Help:        "Total playback data-frame bytes written.",
			ConstLabels: labels,
		}),
		RecordBytesDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pulse_record_bytes_delivered_total",
			Help:        "Total record data-frame bytes delivered to sinks.",
			ConstLabels: labels,
		}),
		ReactorCycles: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pulse_reactor_cycles_total",
			Help:        "Total reactor event-loop iterations.",
			ConstLabels: labels,
		}),
		PlaybackStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pulse_playback_streams",
			Help:        "Currently open playback streams.",
			ConstLabels: labels,
		}),
		RecordStreams: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "pulse_record_streams",
			Help:        "Currently open record streams.",
			ConstLabels: labels,
		}),
	}
	for _, c := range []prometheus.Collector{
		m.CommandsSent, m.RepliesReceived, m.ErrorsReceived,
		m.PlaybackBytesRequested, m.PlaybackBytesSent, m.RecordBytesDelivered,
		m.ReactorCycles, m.PlaybackStreams, m.RecordStreams,
	} {
		reg.MustRegister(c)
	}
	return m
}

func (m *Reactor) incCommandsSent() {
	if m != nil {
		m.CommandsSent.Inc()
	}
}

// CommandSent records one outgoing control command.
func (m *Reactor) CommandSent() { m.incCommandsSent() }

// ReplyReceived records one inbound Reply or Error envelope.
func (m *Reactor) ReplyReceived(isError bool) {
	if m == nil {
		return
	}
	m.RepliesReceived.Inc()
	if isError {
		m.ErrorsReceived.Inc()
	}
}

// PlaybackRequested records bytes the server asked for via a Request.
func (m *Reactor) PlaybackRequested(n uint32) {
	if m != nil {
		m.PlaybackBytesRequested.Add(float64(n))
	}
}

// PlaybackSent records bytes written as a playback data frame.
func (m *Reactor) PlaybackSent(n int) {
	if m != nil {
		m.PlaybackBytesSent.Add(float64(n))
	}
}

// RecordDelivered records bytes handed to a record sink.
func (m *Reactor) RecordDelivered(n int) {
	if m != nil {
		m.RecordBytesDelivered.Add(float64(n))
	}
}

// Cycle records one reactor loop iteration.
func (m *Reactor) Cycle() {
	if m != nil {
		m.ReactorCycles.Inc()
	}
}

// SetPlaybackStreams/SetRecordStreams track the open stream count.
func (m *Reactor) SetPlaybackStreams(n int) {
	if m != nil {
		m.PlaybackStreams.Set(float64(n))
	}
}

func (m *Reactor) SetRecordStreams(n int) {
	if m != nil {
		m.RecordStreams.Set(float64(n))
	}
}
