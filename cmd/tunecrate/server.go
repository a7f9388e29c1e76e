package main

import (
	"net/http"

	"github.com/rs/zerolog"

	"tunecrate/internal/app/admin"
	appauth "tunecrate/internal/app/auth"
	"tunecrate/internal/app/likes"
	"tunecrate/internal/app/reviews"
	"tunecrate/internal/app/songs"
	"tunecrate/internal/auth"
	"tunecrate/internal/config"
	"tunecrate/internal/httpapi"
	"tunecrate/internal/mail"
	"tunecrate/internal/store"
)

func newHTTPHandler(cfg *config.Config, dataStore *store.Store, logger zerolog.Logger) http.Handler {
	tokens := auth.NewTokenManager(cfg.Security.JWTSecret)
	mailer := newMailer(cfg.Mail, logger)

	authSvc := appauth.New(dataStore, tokens, mailer)
	songSvc := songs.New(dataStore)
	reviewSvc := reviews.New(dataStore)
	likeSvc := likes.New(dataStore)
	adminSvc := admin.New(dataStore)

	server := httpapi.New(authSvc, songSvc, reviewSvc, likeSvc, adminSvc, tokens, cfg.Server.UploadDir, logger)

	handler := server.Routes()
	handler = httpapi.CORS(cfg.CORS.AllowedOrigins)(handler)
	handler = httpapi.RequestLogging()(handler)
	handler = httpapi.Recovery()(handler)

	return handler
}

func newMailer(cfg config.MailConfig, logger zerolog.Logger) mail.Mailer {
	if cfg.Host == "" {
		logger.Warn().Msg("SMTP_HOST not set, verification codes will be logged")
		return mail.NewLogMailer(logger)
	}
	return mail.NewSMTPMailer(mail.SMTPConfig{
		Host: cfg.Host,
		Port: cfg.Port,
		User: cfg.User,
		Pass: cfg.Pass,
		From: cfg.From,
	}, logger)
}
