package main

import (
	"context"
	"log"

	fbauth "firebase.google.com/go/v4/auth"

	"github.com/Bhagesh4604/TimeVault1/config"
	"github.com/Bhagesh4604/TimeVault1/internal/auth"
	"github.com/Bhagesh4604/TimeVault1/internal/bootstrap"
	"github.com/Bhagesh4604/TimeVault1/internal/clock"
	"github.com/Bhagesh4604/TimeVault1/internal/suggest"
	"github.com/Bhagesh4604/TimeVault1/internal/vaults/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	bootstrap.SetGinMode(cfg.App.Environment)

	ctx := context.Background()

	st, err := bootstrap.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatalf("vault store: %v", err)
	}
	defer st.Close()

	mat := bootstrap.OpenMedia(ctx, cfg.Media)

	var authClient *fbauth.Client
	if cfg.Firebase.CredentialsPath != "" {
		authClient, err = auth.InitializeFirebase(&cfg.Firebase)
		if err != nil {
			log.Fatalf("firebase: %v", err)
		}
	} else {
		log.Println("[warn] firebase not configured, using X-User-Id header scoping")
	}

	repo := repository.New(st, mat, clock.NewSystem())

	r := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName: "timevault-api",
		Version:     cfg.App.Version,
		Store:       st,
		Repo:        repo,
		Suggest:     suggest.New(cfg.Suggest.BaseURL),
		Clock:       clock.NewSystem(),
		AuthClient:  authClient,
	})

	log.Printf("listening on :%s (store=%s)", cfg.Server.Port, cfg.Store.Backend)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
