package metrics

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/shirou/gopsutil/cpu"
)

const namespace = "staticserv"

// Metrics is a set of collectors of the static server.
type Metrics struct {
	CPU             prometheus.Gauge
	AllocatedMemory prometheus.Gauge
	RequestsNow     prometheus.Gauge
	Requests        *prometheus.CounterVec
	ResponseSize    prometheus.Histogram
	RequestDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them in reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		CPU: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "cpu_usage",
			Help:      "CPU usage",
		}),
		AllocatedMemory: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "allocated_memory",
		}),
		RequestsNow: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "requests_in_flight",
			Help:      "How many requests are being processed",
		}),
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "requests_total",
			Help:      "How many requests were processed, by status code",
		}, []string{"code"}),
		ResponseSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "response_size_bytes",
			Buckets:   prometheus.ExponentialBuckets(256, 4, 8),
		}),
		RequestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "request_duration_seconds",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	reg.MustRegister(
		m.CPU,
		m.AllocatedMemory,
		m.RequestsNow,
		m.Requests,
		m.ResponseSize,
		m.RequestDuration,
	)
	return m
}

// UpdateCPU samples the CPU usage of the host.
func (m *Metrics) UpdateCPU() {
	p, err := cpu.Percent(0, false)
	if err == nil && len(p) > 0 {
		m.CPU.Set(p[0])
	}
}

// UpdateMemory samples the heap of the process.
func (m *Metrics) UpdateMemory() {
	ms := runtime.MemStats{}
	runtime.ReadMemStats(&ms)
	m.AllocatedMemory.Set(float64(ms.Alloc))
}

// ObserveProcess updates CPU and memory gauges every period until ctx is done.
func (m *Metrics) ObserveProcess(ctx context.Context, period time.Duration) {
	t := time.NewTicker(period)
	defer t.Stop()

	m.UpdateMemory()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			m.UpdateCPU()
			m.UpdateMemory()
		}
	}
}

// ObserveRequest records a finished request.
func (m *Metrics) ObserveRequest(code int, size int64, took time.Duration) {
	m.Requests.WithLabelValues(strconv.Itoa(code)).Inc()
	m.ResponseSize.Observe(float64(size))
	m.RequestDuration.Observe(took.Seconds())
}

// Summary is a snapshot of the collected values.
type Summary struct {
	Requests        uint64
	ByCode          map[string]uint64
	BytesSent       uint64
	CPU             float64
	AllocatedMemory uint64
}

// Summary reads the current values of the collectors.
func (m *Metrics) Summary() Summary {
	s := Summary{ByCode: make(map[string]uint64)}

	for _, pb := range collect(m.Requests) {
		n := uint64(pb.GetCounter().GetValue())
		for _, l := range pb.GetLabel() {
			if l.GetName() == "code" {
				s.ByCode[l.GetValue()] += n
			}
		}
		s.Requests += n
	}
	for _, pb := range collect(m.ResponseSize) {
		s.BytesSent += uint64(pb.GetHistogram().GetSampleSum())
	}
	for _, pb := range collect(m.CPU) {
		s.CPU = pb.GetGauge().GetValue()
	}
	for _, pb := range collect(m.AllocatedMemory) {
		s.AllocatedMemory = uint64(pb.GetGauge().GetValue())
	}
	return s
}

func collect(c prometheus.Collector) []*dto.Metric {
	ch := make(chan prometheus.Metric)
	go func() {
		c.Collect(ch)
		close(ch)
	}()

	var result []*dto.Metric
	for m := range ch {
		pb := &dto.Metric{}
		if err := m.Write(pb); err == nil {
			result = append(result, pb)
		}
	}
	return result
}
