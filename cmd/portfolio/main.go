package main

import (
	"context"
	"errors"
	"log"
	"net/http"

	adapthttp "portfolio/internal/adapter/http"
	"portfolio/internal/adapter/postgres"
	redisadapter "portfolio/internal/adapter/redis"
	"portfolio/internal/app"
	"portfolio/internal/config"
	"portfolio/internal/domain"
	"portfolio/internal/enrich"
	"portfolio/internal/mail"
	"portfolio/internal/upload"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := postgres.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer func() { _ = db.Close() }()

	sessions, err := sessionStore(cfg, db)
	if err != nil {
		log.Fatalf("session store: %v", err)
	}

	uploads, err := upload.New(cfg.UploadDir, cfg.MaxUploadBytes)
	if err != nil {
		log.Fatalf("uploads: %v", err)
	}

	var notifier app.Notifier
	if cfg.SendGridAPIKey != "" {
		notifier = mail.NewSendGridSender(cfg.SendGridAPIKey, cfg.MailFrom)
	} else {
		log.Print("SENDGRID_API_KEY not set; registration mail disabled")
	}

	authSvc := app.NewAuthService(postgres.NewUserRepo(db), sessions, notifier)
	projectSvc := app.NewProjectService(
		postgres.NewProjectRepo(db),
		uploads,
		enrich.NewExchangeClient(cfg.ExchangeRateToken),
		enrich.NewActivityClient(),
		enrich.NewTranslateClient(cfg.YandexAPIKey, cfg.YandexFolderID),
	)

	oidcCfg, err := oidcConfig(cfg)
	if err != nil {
		log.Fatalf("oidc: %v", err)
	}

	h := adapthttp.New(authSvc, projectSvc, cfg.UploadDir, oidcCfg).Handler()
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, h); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// sessionStore picks Redis when configured and falls back to Postgres.
func sessionStore(cfg *config.Config, db *postgres.DB) (domain.SessionRepository, error) {
	if cfg.RedisURL == "" {
		return postgres.NewSessionRepo(db), nil
	}

	opt, err := goredis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	rdb := goredis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, err
	}
	return redisadapter.NewSessionRepo(rdb), nil
}

func oidcConfig(cfg *config.Config) (adapthttp.OIDCConfig, error) {
	if !cfg.SSOConfigured() {
		return adapthttp.OIDCConfig{}, nil
	}

	provider, err := oidc.NewProvider(context.Background(), cfg.OIDCIssuer)
	if err != nil {
		return adapthttp.OIDCConfig{}, err
	}

	return adapthttp.OIDCConfig{
		Enabled:  true,
		Provider: provider,
		OAuth2Config: &oauth2.Config{
			ClientID:     cfg.OIDCClientID,
			ClientSecret: cfg.OIDCClientSecret,
			RedirectURL:  cfg.OIDCRedirectURL,
			Endpoint:     provider.Endpoint(),
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
		},
	}, nil
}
