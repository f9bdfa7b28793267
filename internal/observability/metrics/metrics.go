package metrics

import (
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Config configures the metrics registry labels.
type Config struct {
	ServiceName string
	Environment string
}

const (
	OutcomeOK         = "ok"
	OutcomeRejected   = "rejected"
	OutcomeDenied     = "denied"
	OutcomeNotFound   = "not_found"
	OutcomeFailed     = "failed"
	OutcomePanic      = "panic"
	OutcomeUnknownCmd = "unknown_command"
)

// Metrics exposes the bot's prometheus instruments.
type Metrics struct {
	commands        *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	grants          *prometheus.CounterVec
}

// New registers the instruments with registerer (DefaultRegisterer when nil).
func New(cfg Config, registerer prometheus.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "togetherbot"
	}
	environment := strings.TrimSpace(cfg.Environment)
	if environment == "" {
		environment = "unknown"
	}
	constLabels := prometheus.Labels{"service": serviceName, "env": environment}

	m := &Metrics{
		commands: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "togetherbot_commands_total",
			Help:        "Commands handled, by command and outcome.",
			ConstLabels: constLabels,
		}, []string{"command", "outcome"}),
		commandDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "togetherbot_command_duration_seconds",
			Help:        "Command handling latency.",
			ConstLabels: constLabels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"command"}),
		grants: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "togetherbot_entitlement_grants_total",
			Help:        "Feature grants that changed a user's entitlement set.",
			ConstLabels: constLabels,
		}, []string{"feature"}),
	}

	for _, c := range []prometheus.Collector{m.commands, m.commandDuration, m.grants} {
		if err := registerer.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// ObserveCommand records one handled command.
func (m *Metrics) ObserveCommand(command, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	command = normalizeLabel(command)
	m.commands.WithLabelValues(command, outcome).Inc()
	m.commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

// RecordGrant records a newly granted feature.
func (m *Metrics) RecordGrant(feature string) {
	if m == nil {
		return
	}
	m.grants.WithLabelValues(normalizeLabel(feature)).Inc()
}

func normalizeLabel(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return "unknown"
	}
	return value
}
