// Package views holds the server-rendered pages.
package views

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	Index             = "index.html"
	Login             = "login.html"
	SignUp            = "signup.html"
	Home              = "home.html"
	TagManager        = "tag_manager.html"
	TagEdit           = "tag_edit.html"
	PaymentMethodList = "payment_method_man.html"
	PaymentMethodAdd  = "payment_method_add.html"
	PaymentMethodEdit = "payment_method_edit.html"
)

// Load parses every page. Pages share the "header" and "footer" blocks
// defined in layout.html.
func Load() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
