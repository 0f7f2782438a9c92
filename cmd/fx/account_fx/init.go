package account_fx

import (
	"errors"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"mothwallet/internal/config"
	"mothwallet/internal/repositories"
	"mothwallet/internal/services"
	mem "mothwallet/pkg/memcache"
	"mothwallet/pkg/utils"
)

var Module = fx.Provide(
	provideAccountRepo,
	provideHasher,
	provideTokenManager,
	provideAccountDirectory,
	provideAccountService)

func provideAccountRepo(db *gorm.DB) repositories.AccountRepository {
	return repositories.NewAccountRepository(db)
}

func provideHasher(cfg *config.Config) utils.PasswordHasher {
	return utils.NewBcryptHasher(cfg.Auth.BcryptCost)
}

// provideTokenManager falls back to a random per-process secret for local
// SQLite runs. Sessions then end whenever the process restarts.
func provideTokenManager(cfg *config.Config, log *zap.Logger) (*utils.TokenManager, error) {
	secret := cfg.Auth.JWTSecret
	if secret == "" {
		if cfg.Database.Driver != config.DriverSQLite {
			return nil, errors.New("JWT_SECRET is required")
		}
		generated, err := utils.GenerateSecureToken(32)
		if err != nil {
			return nil, err
		}
		log.Warn("JWT_SECRET not set, using an ephemeral secret")
		secret = generated
	}
	return utils.NewTokenManager(secret, cfg.Auth.SessionTTL), nil
}

func provideAccountDirectory(accountRepo repositories.AccountRepository) services.AccountDirectory {
	return services.NewAccountDirectory(accountRepo)
}

func provideAccountService(
	accountRepo repositories.AccountRepository,
	hasher utils.PasswordHasher,
	tokens *utils.TokenManager,
	limiter mem.LoginLimiter,
	log *zap.Logger,
) (services.AccountServiceInterface, error) {
	return services.NewAccountService(accountRepo, hasher, tokens, limiter, log.Named("accounts"))
}
