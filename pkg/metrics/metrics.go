package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RemotePagesFetched = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_pages_fetched_total",
			Help: "Number of pages fetched from the workspace database",
		},
		[]string{"table"},
	)
	RemotePageRetries = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_page_retries_total",
			Help: "Number of retried page fetches",
		},
		[]string{"table"},
	)
	RemoteMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remote_mutations_total",
			Help: "Record mutations by outcome",
		},
		[]string{"status"}, // ok|failed
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "result_cache_operations_total",
			Help: "Result cache operations",
		},
		[]string{"op"}, // hit|miss|expired|put|clear
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "result_cache_size",
			Help: "Number of entries currently in the result cache",
		},
	)
)

var (
	DocumentsRendered = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "documents_rendered_total",
			Help: "Pregenerated order documents by outcome",
		},
		[]string{"status"}, // ok|failed
	)
	MailSends = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mail_sends_total",
			Help: "Dispatch attempts by outcome category",
		},
		[]string{"category"}, // ok|auth|connection|...
	)
	BridgeMessages = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bridge_messages_total",
			Help: "Messages drained from the task bridge",
		},
		[]string{"kind"},
	)
)

func MustRegister() {
	prometheus.MustRegister(
		RemotePagesFetched, RemotePageRetries, RemoteMutations,
		CacheOps, CacheSize,
		DocumentsRendered, MailSends, BridgeMessages,
	)
}
