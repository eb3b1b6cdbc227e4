// Package metrics exposes pipeline state in the Prometheus format.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/haskel/cpuwatch/internal/monitor"
)

const namespace = "cpuwatch"

// StoreReader is the read side of monitor.Store.
type StoreReader interface {
	Usage() monitor.Usage
	Generation() uint64
	Cores() int
}

// Collector reads the store on every scrape, so values are never older
// than one derivation cycle.
type Collector struct {
	store StoreReader

	usageDesc   *prometheus.Desc
	samplesDesc *prometheus.Desc
	coresDesc   *prometheus.Desc
}

func NewCollector(store StoreReader) *Collector {
	return &Collector{
		store: store,
		usageDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "usage_percent"),
			"CPU utilization over the last sampling interval. core=\"all\" is the aggregate.",
			[]string{"core"}, nil),
		samplesDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "samples_total"),
			"Counter samples taken since start, including the bootstrap sample.",
			nil, nil),
		coresDesc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "cores"),
			"Number of monitored logical cores.",
			nil, nil),
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.usageDesc
	ch <- c.samplesDesc
	ch <- c.coresDesc
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	u := c.store.Usage()

	ch <- prometheus.MustNewConstMetric(c.usageDesc, prometheus.GaugeValue, u.Aggregate(), "all")
	for i := 0; i < u.Cores(); i++ {
		ch <- prometheus.MustNewConstMetric(c.usageDesc, prometheus.GaugeValue, u.Core(i), strconv.Itoa(i))
	}

	ch <- prometheus.MustNewConstMetric(c.samplesDesc, prometheus.CounterValue, float64(c.store.Generation()))
	ch <- prometheus.MustNewConstMetric(c.coresDesc, prometheus.GaugeValue, float64(c.store.Cores()))
}

// Handler serves the store collector plus Go runtime metrics from a
// private registry.
func Handler(store StoreReader) http.Handler {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		NewCollector(store),
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}
