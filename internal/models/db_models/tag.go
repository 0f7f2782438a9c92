package db_models

type Tag struct {
	BaseModel
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_tags_account_name,priority:2" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	AccountID   uint   `gorm:"not null;index;uniqueIndex:idx_tags_account_name,priority:1" json:"-"`
}

func (t *Tag) GetID() uint            { return t.ID }
func (t *Tag) GetName() string        { return t.Name }
func (t *Tag) GetDescription() string { return t.Description }
func (t *Tag) GetAccountID() uint     { return t.AccountID }
func (t *Tag) Kind() string           { return "Tag" }

func (t *Tag) Assign(name, description string) {
	t.Name = name
	t.Description = description
}

func (t *Tag) BindOwner(accountID uint) { t.AccountID = accountID }
