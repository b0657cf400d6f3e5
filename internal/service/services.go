package service

import (
	"github.com/MKhiriev/go-card-share/internal/adapter"
	"github.com/MKhiriev/go-card-share/internal/config"
	"github.com/MKhiriev/go-card-share/internal/crypto"
	"github.com/MKhiriev/go-card-share/internal/logger"
	"github.com/MKhiriev/go-card-share/internal/store"
	"github.com/MKhiriev/go-card-share/internal/utils"
)

type Services struct {
	AuthService AuthService
	CardService CardService
}

func NewServices(storages *store.Storages, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService: NewAuthService(
			storages.UserRepository,
			storages.LoginAttemptRepository,
			crypto.NewPasswordHasher(cfg.Auth.BcryptCost),
			cfg.Auth,
			logger,
		),
		CardService: NewCardService(
			storages.CardRepository,
			storages.BlobStore,
			adapter.NewQREncoder(),
			utils.NewUUIDGenerator(),
			cfg.Cards,
			logger,
		),
	}
}
