package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/models/request_models"
	"mothwallet/internal/repositories"
	"mothwallet/pkg/utils"
)

// ResourceServiceInterface is the CRUD contract shared by every resource
// owned by an account. All operations are scoped to accountID.
type ResourceServiceInterface[T any] interface {
	Create(ctx context.Context, accountID uint, request request_models.ResourceRequest) (*T, error)
	ListAll(ctx context.Context, accountID uint) ([]T, error)
	GetOne(ctx context.Context, id, accountID uint) (*T, error)
	Update(ctx context.Context, id, accountID uint, request request_models.ResourceRequest) (*T, error)
	Delete(ctx context.Context, id, accountID uint) (*T, error)
	Kind() string
}

type ResourceService[T any, PT db_models.OwnedResource[T]] struct {
	repo        repositories.OwnedRepositoryInterface[T]
	accountRepo repositories.AccountRepository
	logger      *zap.Logger
	kind        string
}

func NewResourceService[T any, PT db_models.OwnedResource[T]](
	repo repositories.OwnedRepositoryInterface[T],
	accountRepo repositories.AccountRepository,
	logger *zap.Logger,
) *ResourceService[T, PT] {
	kind := PT(new(T)).Kind()
	return &ResourceService[T, PT]{
		repo:        repo,
		accountRepo: accountRepo,
		logger:      logger.With(zap.String("resource", kind)),
		kind:        kind,
	}
}

func (s *ResourceService[T, PT]) Kind() string { return s.kind }

func (s *ResourceService[T, PT]) Create(ctx context.Context, accountID uint, request request_models.ResourceRequest) (*T, error) {
	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByNameAndOwner(ctx, request.Name, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if existing != nil {
		return nil, s.nameTaken(request.Name)
	}

	entity := new(T)
	PT(entity).Assign(request.Name, request.Description)
	PT(entity).BindOwner(accountID)

	if err := s.repo.Insert(ctx, entity); err != nil {
		if repositories.IsUniqueViolation(err) {
			return nil, s.nameTaken(request.Name)
		}
		return nil, utils.DatabaseError(err)
	}

	s.logger.Info("created", zap.Uint("account_id", accountID), zap.Uint("id", PT(entity).GetID()))
	return entity, nil
}

func (s *ResourceService[T, PT]) ListAll(ctx context.Context, accountID uint) ([]T, error) {
	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	entities, err := s.repo.FindAllByOwner(ctx, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	return entities, nil
}

func (s *ResourceService[T, PT]) GetOne(ctx context.Context, id, accountID uint) (*T, error) {
	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}
	return s.findOwned(ctx, id, accountID)
}

// Update checks the new name only when it differs from the stored one, so
// saving a resource under its own name never conflicts with itself.
func (s *ResourceService[T, PT]) Update(ctx context.Context, id, accountID uint, request request_models.ResourceRequest) (*T, error) {
	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	entity, err := s.findOwned(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	if PT(entity).GetName() != request.Name {
		other, err := s.repo.FindByNameAndOwner(ctx, request.Name, accountID)
		if err != nil {
			return nil, utils.DatabaseError(err)
		}
		if other != nil && PT(other).GetID() != id {
			return nil, s.nameTaken(request.Name)
		}
	}

	if err := s.repo.UpdateByIDAndOwner(ctx, id, accountID, request.Name, request.Description); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound()
		}
		if repositories.IsUniqueViolation(err) {
			return nil, s.nameTaken(request.Name)
		}
		return nil, utils.DatabaseError(err)
	}

	entity, err = s.findOwned(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("updated", zap.Uint("account_id", accountID), zap.Uint("id", id))
	return entity, nil
}

// Delete returns the removed value so callers can name it in a
// confirmation message.
func (s *ResourceService[T, PT]) Delete(ctx context.Context, id, accountID uint) (*T, error) {
	if err := s.requireAccount(ctx, accountID); err != nil {
		return nil, err
	}

	entity, err := s.findOwned(ctx, id, accountID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteByIDAndOwner(ctx, id, accountID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, s.notFound()
		}
		return nil, utils.DatabaseError(err)
	}

	s.logger.Info("deleted", zap.Uint("account_id", accountID), zap.Uint("id", id))
	return entity, nil
}

func (s *ResourceService[T, PT]) requireAccount(ctx context.Context, accountID uint) error {
	if accountID == 0 {
		return utils.NewUserError(utils.ErrUnauthorizedAccount, "Unauthorized account.")
	}
	account, err := s.accountRepo.FindById(ctx, accountID)
	if err != nil {
		return utils.DatabaseError(err)
	}
	if account == nil {
		return utils.NewUserError(utils.ErrUnauthorizedAccount, "Unauthorized account.")
	}
	return nil
}

func (s *ResourceService[T, PT]) findOwned(ctx context.Context, id, accountID uint) (*T, error) {
	entity, err := s.repo.FindByIDAndOwner(ctx, id, accountID)
	if err != nil {
		return nil, utils.DatabaseError(err)
	}
	if entity == nil {
		return nil, s.notFound()
	}
	return entity, nil
}

func (s *ResourceService[T, PT]) nameTaken(name string) error {
	return utils.NewUserError(utils.ErrNameAlreadyExists, "%s '%s' already exists.", s.kind, name)
}

func (s *ResourceService[T, PT]) notFound() error {
	return utils.NewUserError(utils.ErrNotFoundOrNotAuthorized, "%s not found or not authorized.", s.kind)
}
