package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"mothwallet/pkg/middleware"
	"mothwallet/pkg/utils"
)

// renderPage fills the layout fields shared by every page.
func renderPage(c *gin.Context, status int, view string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	if principal := middleware.Principal(c); principal != "" {
		data["username"] = principal
	}
	c.HTML(status, view, data)
}

// renderError attaches the user-facing message for err to the view.
func renderError(c *gin.Context, view string, data gin.H, err error) {
	if data == nil {
		data = gin.H{}
	}
	status := utils.StatusFor(err)
	if errors.Is(err, utils.ErrDatabaseError) || status >= 500 {
		zap.L().Error("request failed", zap.Error(err), zap.String("trace_id", c.GetString("trace_id")))
	}
	data["error"] = utils.UserMessage(err)
	renderPage(c, status, view, data)
}
