package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

func SetupPrometheus(versionInfo string, extraCollectors ...prometheus.Collector) *prometheus.Registry {
	promRegistry := prometheus.NewRegistry()

	promRegistry.MustRegister(
		collectors.NewBuildInfoCollector(),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// fitquest_version_info{version} is always 1
	if versionInfo == "" {
		versionInfo = "unknown"
	}
	versionGauge := prometheus.NewGauge(prometheus.GaugeOpts{
		Name:        "fitquest_version_info",
		Help:        "Version of the running service, always 1",
		ConstLabels: prometheus.Labels{"version": versionInfo},
	})
	versionGauge.Set(1)
	promRegistry.MustRegister(versionGauge)

	promRegistry.MustRegister(extraCollectors...)

	return promRegistry
}
