package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/models/request_models"
	"mothwallet/internal/repositories"
	mem "mothwallet/pkg/memcache"
	"mothwallet/pkg/utils"
)

type AccountServiceInterface interface {
	Login(ctx context.Context, request request_models.LoginRequest, clientIP string) (string, error)
	CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*db_models.Account, error)
	DeleteAccount(ctx context.Context, accountID uint) error
}

type TokenIssuer interface {
	CreateToken(username string) (string, error)
}

type AccountService struct {
	accountRepo repositories.AccountRepository
	hasher      utils.PasswordHasher
	tokens      TokenIssuer
	limiter     mem.LoginLimiter
	logger      *zap.Logger

	// dummyHash is compared against when no account matches so a failed
	// lookup costs the same as a wrong password.
	dummyHash string
}

func NewAccountService(
	accountRepo repositories.AccountRepository,
	hasher utils.PasswordHasher,
	tokens TokenIssuer,
	limiter mem.LoginLimiter,
	logger *zap.Logger,
) (AccountServiceInterface, error) {
	dummy, err := hasher.Hash("mothwallet-timing-equalizer")
	if err != nil {
		return nil, err
	}
	return &AccountService{
		accountRepo: accountRepo,
		hasher:      hasher,
		tokens:      tokens,
		limiter:     limiter,
		logger:      logger,
		dummyHash:   dummy,
	}, nil
}

func (a *AccountService) Login(ctx context.Context, request request_models.LoginRequest, clientIP string) (string, error) {
	startTime := time.Now()

	if a.limiter != nil && !a.limiter.Allow(request.Identifier+"|"+clientIP) {
		a.logger.Warn("login throttled", zap.String("client_ip", clientIP))
		return "", utils.ErrTooManyAttempts
	}

	account, err := a.findForLogin(ctx, request.Identifier)
	if err != nil {
		return "", utils.DatabaseError(err)
	}

	if account == nil {
		_ = a.hasher.Compare(a.dummyHash, request.Password)
		return "", utils.ErrInvalidCredentials
	}

	if err := a.hasher.Compare(account.PasswordHash, request.Password); err != nil {
		return "", utils.ErrInvalidCredentials
	}

	a.logger.Debug("password verified", zap.Duration("elapsed", time.Since(startTime)))

	token, err := a.tokens.CreateToken(account.Username)
	if err != nil {
		a.logger.Error("token generation failed", zap.Error(err))
		return "", utils.ErrInvalidCredentials
	}

	a.logger.Info("login succeeded", zap.Uint("account_id", account.ID), zap.Duration("elapsed", time.Since(startTime)))

	return token, nil
}

// CreateAccount validates in a fixed order: email, password confirmation,
// username. The first failure wins and later checks are skipped. Emails and
// usernames share one namespace so an identity never names two accounts.
func (a *AccountService) CreateAccount(ctx context.Context, request request_models.SignUpRequest) (*db_models.Account, error) {
	taken, err := a.identityTaken(ctx, request.Email)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if taken {
		return nil, emailTaken(request.Email)
	}

	if request.Password != request.RepeatPassword {
		return nil, utils.NewUserError(utils.ErrPasswordMismatch, "Passwords do not match.")
	}

	if strings.Contains(request.Username, "@") {
		return nil, utils.NewUserError(utils.ErrInvalidUsername, "Username must not contain '@'.")
	}
	taken, err = a.identityTaken(ctx, request.Username)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if taken {
		return nil, usernameTaken(request.Username)
	}

	hashedPassword, err := a.hasher.Hash(request.Password)
	if err != nil {
		return nil, err
	}

	newAccount := &db_models.Account{
		Email:        request.Email,
		Username:     request.Username,
		PasswordHash: hashedPassword,
	}

	if err := a.accountRepo.InsertTx(newAccount, ctx); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, a.resolveSignUpConflict(ctx, request, err)
		}
		return nil, utils.DatabaseError(err)
	}

	a.logger.Info("account created", zap.Uint("account_id", newAccount.ID))

	return newAccount, nil
}

// identityTaken reports whether value is already used as an email or as a
// username by any account.
func (a *AccountService) identityTaken(ctx context.Context, value string) (bool, error) {
	byEmail, err := a.accountRepo.FindByEmail(ctx, value)
	if err != nil {
		return false, err
	}
	if byEmail != nil {
		return true, nil
	}
	byUsername, err := a.accountRepo.FindByUsername(ctx, value)
	if err != nil {
		return false, err
	}
	return byUsername != nil, nil
}

// findForLogin looks the identifier up in exactly one column. Usernames
// never contain '@', so an identifier with one is an email.
func (a *AccountService) findForLogin(ctx context.Context, identifier string) (*db_models.Account, error) {
	if strings.Contains(identifier, "@") {
		return a.accountRepo.FindByEmail(ctx, identifier)
	}
	return a.accountRepo.FindByUsername(ctx, identifier)
}

// resolveSignUpConflict names the column that lost a concurrent sign-up race.
func (a *AccountService) resolveSignUpConflict(ctx context.Context, request request_models.SignUpRequest, cause error) error {
	if acc, err := a.accountRepo.FindByEmail(ctx, request.Email); err == nil && acc != nil {
		return emailTaken(request.Email)
	}
	if acc, err := a.accountRepo.FindByUsername(ctx, request.Username); err == nil && acc != nil {
		return usernameTaken(request.Username)
	}
	return utils.DatabaseError(cause)
}

func (a *AccountService) DeleteAccount(ctx context.Context, accountID uint) error {
	if err := a.accountRepo.DeleteWithResources(ctx, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NewUserError(utils.ErrUnauthorizedAccount, "Unauthorized account.")
		}
		return utils.DatabaseError(err)
	}
	a.logger.Info("account deleted", zap.Uint("account_id", accountID))
	return nil
}

func emailTaken(email string) error {
	return utils.NewUserError(utils.ErrEmailAlreadyExists, "Email %s already exists.", email)
}

func usernameTaken(username string) error {
	return utils.NewUserError(utils.ErrUsernameAlreadyExists, "Username %s already exists.", username)
}
