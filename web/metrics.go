package web

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rendersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mbti_renders_total",
		Help: "Render cycles by notice level.",
	}, []string{"level"})

	uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mbti_uploads_total",
		Help: "Uploaded files by outcome.",
	}, []string{"outcome"})

	sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mbti_sessions_active",
		Help: "Sessions currently held in memory.",
	})
)
