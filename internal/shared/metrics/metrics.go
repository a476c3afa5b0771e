package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Collector records service metrics. A nil *Collector is a valid no-op.
type Collector struct {
	scoreRequests      prometheus.Counter
	entitlementDenials *prometheus.CounterVec
	analyses           *prometheus.CounterVec
	aiRequests         *prometheus.CounterVec
	exports            *prometheus.CounterVec
	exportDuration     prometheus.Histogram
	tierUpgrades       prometheus.Counter
	templateFallbacks  prometheus.Counter
	gatherer           prometheus.Gatherer
}

// NewCollector creates a Collector and registers it with reg.
func NewCollector(reg *prometheus.Registry) *Collector {
	c := &Collector{
		scoreRequests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resume_builder_score_requests_total",
			Help: "Total resume/job match scores computed",
		}),
		entitlementDenials: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_builder_entitlement_denials_total",
			Help: "Entitlement denials by reason code",
		}, []string{"reason"}),
		analyses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_builder_job_analyses_total",
			Help: "Job description analyses by outcome",
		}, []string{"outcome"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_builder_ai_requests_total",
			Help: "AI assistance requests by feature and outcome",
		}, []string{"feature", "outcome"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "resume_builder_exports_total",
			Help: "PDF exports by outcome",
		}, []string{"outcome"}),
		exportDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "resume_builder_export_duration_seconds",
			Help:    "PDF export duration in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 30},
		}),
		tierUpgrades: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resume_builder_tier_upgrades_total",
			Help: "Accounts upgraded to pro",
		}),
		templateFallbacks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "resume_builder_template_fallbacks_total",
			Help: "Renders that fell back to the default free template",
		}),
		gatherer: reg,
	}

	reg.MustRegister(
		c.scoreRequests,
		c.entitlementDenials,
		c.analyses,
		c.aiRequests,
		c.exports,
		c.exportDuration,
		c.tierUpgrades,
		c.templateFallbacks,
	)
	return c
}

// IncScoreRequests counts a computed score.
func (c *Collector) IncScoreRequests() {
	if c == nil {
		return
	}
	c.scoreRequests.Inc()
}

// IncEntitlementDenied counts a denial by reason code.
func (c *Collector) IncEntitlementDenied(reason string) {
	if c == nil {
		return
	}
	c.entitlementDenials.WithLabelValues(reason).Inc()
}

// IncAnalysis counts a job analysis attempt.
func (c *Collector) IncAnalysis(outcome string) {
	if c == nil {
		return
	}
	c.analyses.WithLabelValues(outcome).Inc()
}

// IncAIRequest counts an AI assistance call.
func (c *Collector) IncAIRequest(feature, outcome string) {
	if c == nil {
		return
	}
	c.aiRequests.WithLabelValues(feature, outcome).Inc()
}

// ObserveExport records an export attempt and its duration.
func (c *Collector) ObserveExport(outcome string, d time.Duration) {
	if c == nil {
		return
	}
	c.exports.WithLabelValues(outcome).Inc()
	c.exportDuration.Observe(d.Seconds())
}

// IncTierUpgrade counts a free to pro transition.
func (c *Collector) IncTierUpgrade() {
	if c == nil {
		return
	}
	c.tierUpgrades.Inc()
}

// IncTemplateFallback counts a render that fell back to the free template.
func (c *Collector) IncTemplateFallback() {
	if c == nil {
		return
	}
	c.templateFallbacks.Inc()
}

// Handler exposes metrics in Prometheus text format.
func (c *Collector) Handler() gin.HandlerFunc {
	if c == nil {
		return gin.WrapH(promhttp.Handler())
	}
	return gin.WrapH(promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{}))
}
