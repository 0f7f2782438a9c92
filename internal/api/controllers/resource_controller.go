package controllers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"mothwallet/internal/models/db_models"
	"mothwallet/internal/models/request_models"
	"mothwallet/internal/models/response_models"
	"mothwallet/internal/services"
	"mothwallet/pkg/metrics"
	"mothwallet/pkg/middleware"
	"mothwallet/pkg/utils"
)

// ResourcePages names the templates a resource is rendered with. Add may be
// the list page when the create form lives next to the list.
type ResourcePages struct {
	Title string
	List  string
	Add   string
	Edit  string
}

// ResourceController serves the HTML pages and the JSON API for one kind of
// account-owned resource.
type ResourceController[T any, PT db_models.OwnedResource[T]] struct {
	service   services.ResourceServiceInterface[T]
	directory services.AccountDirectory
	metrics   *metrics.Metrics
	pages     ResourcePages
}

func NewResourceController[T any, PT db_models.OwnedResource[T]](
	service services.ResourceServiceInterface[T],
	directory services.AccountDirectory,
	m *metrics.Metrics,
	pages ResourcePages,
) *ResourceController[T, PT] {
	return &ResourceController[T, PT]{
		service:   service,
		directory: directory,
		metrics:   m,
		pages:     pages,
	}
}

func (rc *ResourceController[T, PT]) List(c *gin.Context) {
	ctx := c.Request.Context()
	data := rc.page()

	accountID, err := rc.accountID(c)
	if err != nil {
		renderError(c, rc.pages.List, data, err)
		return
	}

	if err := rc.loadItems(ctx, accountID, data); err != nil {
		renderError(c, rc.pages.List, data, err)
		return
	}
	renderPage(c, http.StatusOK, rc.pages.List, data)
}

func (rc *ResourceController[T, PT]) AddForm(c *gin.Context) {
	renderPage(c, http.StatusOK, rc.pages.Add, rc.page())
}

func (rc *ResourceController[T, PT]) Create(c *gin.Context) {
	ctx := c.Request.Context()
	data := rc.page()

	accountID, err := rc.accountID(c)
	if err != nil {
		renderError(c, rc.pages.Add, data, err)
		return
	}

	var req request_models.ResourceRequest
	if err := c.ShouldBind(&req); err != nil {
		rc.refresh(ctx, rc.pages.Add, accountID, data)
		data["error"] = "Please provide a name (up to 100 characters) and an optional description (up to 255 characters)."
		renderPage(c, http.StatusBadRequest, rc.pages.Add, data)
		return
	}

	created, err := rc.service.Create(ctx, accountID, req)
	rc.record("create", err)
	rc.refresh(ctx, rc.pages.Add, accountID, data)
	if err != nil {
		renderError(c, rc.pages.Add, data, err)
		return
	}

	data["success"] = rc.service.Kind() + " '" + PT(created).GetName() + "' was created successfully."
	renderPage(c, http.StatusCreated, rc.pages.Add, data)
}

func (rc *ResourceController[T, PT]) EditForm(c *gin.Context) {
	ctx := c.Request.Context()
	data := rc.page()

	accountID, id, err := rc.scope(c)
	if err != nil {
		renderError(c, rc.pages.Edit, data, err)
		return
	}

	entity, err := rc.service.GetOne(ctx, id, accountID)
	if err != nil {
		renderError(c, rc.pages.Edit, data, err)
		return
	}

	data["item"] = response_models.NewResourceView(PT(entity))
	renderPage(c, http.StatusOK, rc.pages.Edit, data)
}

func (rc *ResourceController[T, PT]) Update(c *gin.Context) {
	ctx := c.Request.Context()
	data := rc.page()

	accountID, id, err := rc.scope(c)
	if err != nil {
		rc.refresh(ctx, rc.pages.List, accountID, data)
		renderError(c, rc.pages.List, data, err)
		return
	}

	var req request_models.ResourceRequest
	if err := c.ShouldBind(&req); err != nil {
		rc.refresh(ctx, rc.pages.List, accountID, data)
		data["error"] = "Please provide a name (up to 100 characters) and an optional description (up to 255 characters)."
		renderPage(c, http.StatusBadRequest, rc.pages.List, data)
		return
	}

	updated, err := rc.service.Update(ctx, id, accountID, req)
	rc.record("update", err)
	rc.refresh(ctx, rc.pages.List, accountID, data)
	if err != nil {
		renderError(c, rc.pages.List, data, err)
		return
	}

	data["success"] = rc.service.Kind() + " '" + PT(updated).GetName() + "' was updated successfully."
	renderPage(c, http.StatusOK, rc.pages.List, data)
}

func (rc *ResourceController[T, PT]) Delete(c *gin.Context) {
	ctx := c.Request.Context()
	data := rc.page()

	accountID, id, err := rc.scope(c)
	if err != nil {
		rc.refresh(ctx, rc.pages.List, accountID, data)
		renderError(c, rc.pages.List, data, err)
		return
	}

	deleted, err := rc.service.Delete(ctx, id, accountID)
	rc.record("delete", err)
	rc.refresh(ctx, rc.pages.List, accountID, data)
	if err != nil {
		renderError(c, rc.pages.List, data, err)
		return
	}

	data["success"] = rc.service.Kind() + " '" + PT(deleted).GetName() + "' was deleted successfully."
	renderPage(c, http.StatusOK, rc.pages.List, data)
}

func (rc *ResourceController[T, PT]) ListAPI(c *gin.Context) {
	accountID, err := rc.accountID(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	entities, err := rc.service.ListAll(c.Request.Context(), accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, rc.views(entities), "Fetched successfully")
}

func (rc *ResourceController[T, PT]) GetAPI(c *gin.Context) {
	accountID, id, err := rc.scope(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	entity, err := rc.service.GetOne(c.Request.Context(), id, accountID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewResourceView(PT(entity)), "Fetched successfully")
}

func (rc *ResourceController[T, PT]) CreateAPI(c *gin.Context) {
	accountID, err := rc.accountID(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var req request_models.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	created, err := rc.service.Create(c.Request.Context(), accountID, req)
	rc.record("create", err)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondCreated(c, response_models.NewResourceView(PT(created)), rc.service.Kind()+" created successfully")
}

func (rc *ResourceController[T, PT]) UpdateAPI(c *gin.Context) {
	accountID, id, err := rc.scope(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	var req request_models.ResourceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	updated, err := rc.service.Update(c.Request.Context(), id, accountID, req)
	rc.record("update", err)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewResourceView(PT(updated)), rc.service.Kind()+" updated successfully")
}

func (rc *ResourceController[T, PT]) DeleteAPI(c *gin.Context) {
	accountID, id, err := rc.scope(c)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	deleted, err := rc.service.Delete(c.Request.Context(), id, accountID)
	rc.record("delete", err)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.NewResourceView(PT(deleted)), rc.service.Kind()+" deleted successfully")
}

func (rc *ResourceController[T, PT]) page() gin.H {
	return gin.H{"title": rc.pages.Title}
}

func (rc *ResourceController[T, PT]) accountID(c *gin.Context) (uint, error) {
	return rc.directory.ResolveAccountID(c.Request.Context(), middleware.Principal(c))
}

// scope resolves the caller's account and the resource id from the path.
// A malformed id is reported like any other id the caller does not own; the
// account id is still returned so the page can show the caller's list.
func (rc *ResourceController[T, PT]) scope(c *gin.Context) (uint, uint, error) {
	accountID, err := rc.accountID(c)
	if err != nil {
		return 0, 0, err
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return accountID, 0, utils.NewUserError(utils.ErrNotFoundOrNotAuthorized, "%s not found or not authorized.", rc.service.Kind())
	}
	return accountID, uint(id), nil
}

// refresh loads the item list when view is the list page. Failures are left
// to the caller's own error message.
func (rc *ResourceController[T, PT]) refresh(ctx context.Context, view string, accountID uint, data gin.H) {
	if view != rc.pages.List || accountID == 0 {
		return
	}
	_ = rc.loadItems(ctx, accountID, data)
}

func (rc *ResourceController[T, PT]) loadItems(ctx context.Context, accountID uint, data gin.H) error {
	entities, err := rc.service.ListAll(ctx, accountID)
	if err != nil {
		return err
	}
	data["items"] = rc.views(entities)
	return nil
}

func (rc *ResourceController[T, PT]) views(entities []T) []response_models.ResourceView {
	out := make([]response_models.ResourceView, 0, len(entities))
	for i := range entities {
		out = append(out, response_models.NewResourceView(PT(&entities[i])))
	}
	return out
}

func (rc *ResourceController[T, PT]) record(operation string, err error) {
	if rc.metrics != nil {
		rc.metrics.RecordResourceOp(rc.service.Kind(), operation, err)
	}
}
