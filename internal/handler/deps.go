package handler

import (
	"gamevault/internal/app/account"
	"gamevault/internal/app/catalog"
	"gamevault/internal/app/notify"
	"gamevault/internal/app/profile"
	"gamevault/internal/app/rating"
	"gamevault/internal/app/session"
	"gamevault/internal/configs"
)

// AppDeps bundles the collaborators every handler closure receives.
type AppDeps struct {
	Config   *configs.AppConfig
	Catalog  *catalog.Service
	Accounts *account.Store
	Profiles *profile.Service
	Ratings  *rating.Service
	Sessions *session.Manager
	Notifier *notify.Hub
}
