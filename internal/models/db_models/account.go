package db_models

type Account struct {
	BaseModel
	Email        string `gorm:"size:255;not null;uniqueIndex:idx_accounts_email"`
	Username     string `gorm:"size:50;not null;uniqueIndex:idx_accounts_username"`
	PasswordHash string `gorm:"not null" json:"-"`
}
