package app

import (
	"gorm.io/gorm"

	"github.com/wearly/shopagent-backend/internal/logger"
	"github.com/wearly/shopagent-backend/internal/repos"
)

type Repos struct {
	Products repos.ProductRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	return Repos{
		Products: repos.NewProductRepo(db, log),
	}
}
