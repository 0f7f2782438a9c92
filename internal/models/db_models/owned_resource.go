package db_models

// OwnedResource is implemented by the pointer type of every model that
// belongs to exactly one account and carries a name unique within it.
type OwnedResource[T any] interface {
	*T
	GetID() uint
	GetName() string
	GetDescription() string
	GetAccountID() uint
	GetCreatedAt() int64
	GetUpdatedAt() int64
	Assign(name, description string)
	BindOwner(accountID uint)
	Kind() string
}
