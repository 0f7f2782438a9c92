package response_models

import (
	"mothwallet/pkg/utils"
)

// ResourceView is the read-only projection of a tag or payment method used
// by both the JSON API and the HTML views.
type ResourceView struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type resource interface {
	GetID() uint
	GetName() string
	GetDescription() string
	GetCreatedAt() int64
	GetUpdatedAt() int64
}

func NewResourceView(r resource) ResourceView {
	return ResourceView{
		ID:          r.GetID(),
		Name:        r.GetName(),
		Description: r.GetDescription(),
		CreatedAt:   utils.FormatDisplayDate(r.GetCreatedAt()),
		UpdatedAt:   utils.FormatDisplayDate(r.GetUpdatedAt()),
	}
}
