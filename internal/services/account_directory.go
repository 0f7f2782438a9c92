package services

import (
	"context"
	"strings"

	"mothwallet/internal/repositories"
	"mothwallet/pkg/utils"
)

// AccountDirectory maps the principal attached to a request to the internal
// account id. Session tokens carry the username; an email is accepted too.
type AccountDirectory interface {
	ResolveAccountID(ctx context.Context, identity string) (uint, error)
}

type accountDirectory struct {
	accountRepo repositories.AccountRepository
}

func NewAccountDirectory(accountRepo repositories.AccountRepository) AccountDirectory {
	return &accountDirectory{accountRepo: accountRepo}
}

// ResolveAccountID prefers an exact username match. The email column is
// only consulted when no username matches and identity looks like an email.
func (d *accountDirectory) ResolveAccountID(ctx context.Context, identity string) (uint, error) {
	if identity == "" {
		return 0, utils.ErrAccountNotFound
	}
	account, err := d.accountRepo.FindByUsername(ctx, identity)
	if err != nil {
		return 0, utils.DatabaseError(err)
	}
	if account == nil && strings.Contains(identity, "@") {
		account, err = d.accountRepo.FindByEmail(ctx, identity)
		if err != nil {
			return 0, utils.DatabaseError(err)
		}
	}
	if account == nil {
		return 0, utils.ErrAccountNotFound
	}
	return account.ID, nil
}
