package controllers

import (
	"mothwallet/internal/api/views"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/services"
	"mothwallet/pkg/metrics"
)

// TagController manages tags. The create form sits on the list page.
type TagController = ResourceController[db_models.Tag, *db_models.Tag]

func NewTagController(tagService services.TagServiceInterface, directory services.AccountDirectory, m *metrics.Metrics) *TagController {
	return NewResourceController[db_models.Tag, *db_models.Tag](tagService, directory, m, ResourcePages{
		Title: "Tag manager",
		List:  views.TagManager,
		Add:   views.TagManager,
		Edit:  views.TagEdit,
	})
}
