package common

import "github.com/prometheus/client_golang/prometheus"

const (
	HTTPRequestTotal           = "http_requests_total"
	HTTPRequestDurationSeconds = "http_request_duration_seconds"
	PointsAwardedTotal         = "starpath_points_awarded_total"
	PointEventsTotal           = "starpath_point_events_total"
	AchievementsUnlockedTotal  = "starpath_achievements_unlocked_total"
	StreakTransitionsTotal     = "starpath_streak_transitions_total"
	StarRankAdvancedTotal      = "starpath_star_rank_advanced_total"
	ConcurrentModifications    = "starpath_concurrent_modifications_total"
	EventPublishFailuresTotal  = "starpath_event_publish_failures_total"
)

var (
	PromCounters = map[string]*prometheus.CounterVec{
		HTTPRequestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: HTTPRequestTotal,
			Help: "Count of all HTTP requests",
		}, []string{"method", "status_code"}),
		PointsAwardedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PointsAwardedTotal,
			Help: "Sum of awarded points by event type",
		}, []string{"type"}),
		PointEventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: PointEventsTotal,
			Help: "Count of point events by event type",
		}, []string{"type"}),
		AchievementsUnlockedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: AchievementsUnlockedTotal,
			Help: "Count of achievement unlocks",
		}, []string{"achievement"}),
		StreakTransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: StreakTransitionsTotal,
			Help: "Count of streak advances and breaks",
		}, []string{"transition"}),
		StarRankAdvancedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: StarRankAdvancedTotal,
			Help: "Count of star rank advances by reached rank",
		}, []string{"rank"}),
		ConcurrentModifications: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: ConcurrentModifications,
			Help: "Count of rejected saves because of a version conflict",
		}, []string{"operation"}),
		EventPublishFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: EventPublishFailuresTotal,
			Help: "Count of domain events which could not be published",
		}, []string{"event"}),
	}

	PromHistograms = map[string]*prometheus.HistogramVec{
		HTTPRequestDurationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: HTTPRequestDurationSeconds,
			Help: "Duration of all HTTP requests",
		}, []string{"method", "status_code"}),
	}
)
