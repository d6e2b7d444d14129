package app

import (
	"strings"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/utils"
)

const (
	ServiceName = "AI Shopping Agent API"
	Version     = "4.0.0"
)

var Features = []string{
	"database_search",
	"web_search_fallback",
	"user_personalization",
	"click_recommendations",
}

type Config struct {
	Port         string
	AllowOrigins []string
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)

	var origins []string
	if raw := utils.GetEnv("CORS_ALLOW_ORIGINS", "", log); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return Config{
		Port:         port,
		AllowOrigins: origins,
	}
}
