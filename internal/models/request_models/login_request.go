package request_models

type LoginRequest struct {
	// Identifier is either the email or the username.
	Identifier string `form:"username" json:"identifier" binding:"required"`
	Password   string `form:"password" json:"password" binding:"required"`
}

type SignUpRequest struct {
	Email          string `form:"email" json:"email" binding:"required,email,max=255"`
	Password       string `form:"password" json:"password" binding:"required,min=6,max=72"`
	RepeatPassword string `form:"repeat_password" json:"repeat_password" binding:"required"`
	Username       string `form:"username" json:"username" binding:"required,min=3,max=50,excludes=@"`
}
