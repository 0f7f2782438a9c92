package db_models

type PaymentMethod struct {
	BaseModel
	Name        string `gorm:"size:100;not null;uniqueIndex:idx_payment_methods_account_name,priority:2" json:"name"`
	Description string `gorm:"size:255" json:"description"`
	AccountID   uint   `gorm:"not null;index;uniqueIndex:idx_payment_methods_account_name,priority:1" json:"-"`
}

func (p *PaymentMethod) GetID() uint            { return p.ID }
func (p *PaymentMethod) GetName() string        { return p.Name }
func (p *PaymentMethod) GetDescription() string { return p.Description }
func (p *PaymentMethod) GetAccountID() uint     { return p.AccountID }
func (p *PaymentMethod) Kind() string           { return "Payment method" }

func (p *PaymentMethod) Assign(name, description string) {
	p.Name = name
	p.Description = description
}

func (p *PaymentMethod) BindOwner(accountID uint) { p.AccountID = accountID }
