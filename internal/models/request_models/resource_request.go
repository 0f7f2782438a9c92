package request_models

// ResourceRequest is the payload shared by tags and payment methods.
type ResourceRequest struct {
	Name        string `form:"name" json:"name" binding:"required,max=100"`
	Description string `form:"description" json:"description" binding:"max=255"`
}
