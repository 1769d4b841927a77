package bootstrap

import (
	fbauth "firebase.google.com/go/v4/auth"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/Bhagesh4604/TimeVault1/internal/api/http"
	"github.com/Bhagesh4604/TimeVault1/internal/api/http/middleware"
	"github.com/Bhagesh4604/TimeVault1/internal/auth"
	"github.com/Bhagesh4604/TimeVault1/internal/clock"
	"github.com/Bhagesh4604/TimeVault1/internal/suggest"
	vaulthttp "github.com/Bhagesh4604/TimeVault1/internal/vaults/http"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/repository"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/session"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/store"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Store       store.VaultStore
	Repo        *repository.Repository
	Suggest     *suggest.Client
	Clock       clock.Clock
	AuthClient  *fbauth.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.Store)
	healthHandler.RegisterRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.RequestIDMiddleware())
	api.Use(auth.WithUser(dep.AuthClient))

	vaultsGroup := api.Group("/vaults")
	vaulthttp.Register(vaultsGroup, session.NewRegistry(dep.Repo), dep.Suggest, dep.Clock)

	return r
}
