package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	entriesSubmitted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cv",
			Name:      "entries_submitted_total",
			Help:      "成功提交的简历条目数。",
		},
	)

	submissionsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cv",
			Name:      "submission_field_errors_total",
			Help:      "提交被拦截时各字段的校验错误次数。",
		},
		[]string{"field"},
	)

	entriesDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cv",
			Name:      "entries_deleted_total",
			Help:      "删除的简历条目数。",
		},
	)

	exportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cv",
			Name:      "exports_total",
			Help:      "导出请求数，按结果区分（download / noop）。",
		},
		[]string{"result"},
	)

	liveWorkspaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "live_workspaces",
			Help:      "内存中存活的会话数量。",
		},
	)
)

func EntrySubmitted() { entriesSubmitted.Inc() }
func EntryDeleted()   { entriesDeleted.Inc() }

// SubmissionRejected 记录一次被拦截的提交里每个出错的字段。
func SubmissionRejected(fields []string) {
	for _, f := range fields {
		submissionsRejected.WithLabelValues(f).Inc()
	}
}

// Export records an export request; downloaded is false for the no-selection no-op.
func Export(downloaded bool) {
	result := "noop"
	if downloaded {
		result = "download"
	}
	exportsTotal.WithLabelValues(result).Inc()
}

// SetLiveWorkspaces 上报当前会话数量，供 session.WithLiveHook 使用。
func SetLiveWorkspaces(n int) {
	liveWorkspaces.Set(float64(n))
}
