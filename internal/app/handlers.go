package app

import (
	httpH "github.com/wearly/shopagent-backend/internal/http/handlers"
)

type Handlers struct {
	Status    *httpH.StatusHandler
	Health    *httpH.HealthHandler
	Search    *httpH.SearchHandler
	Track     *httpH.TrackHandler
	Recommend *httpH.RecommendHandler
}

func wireHandlers(serviceset Services) Handlers {
	return Handlers{
		Status:    httpH.NewStatusHandler(ServiceName, Version, Features),
		Health:    httpH.NewHealthHandler(),
		Search:    httpH.NewSearchHandler(serviceset.Search),
		Track:     httpH.NewTrackHandler(serviceset.Profile),
		Recommend: httpH.NewRecommendHandler(serviceset.Recommendations),
	}
}
