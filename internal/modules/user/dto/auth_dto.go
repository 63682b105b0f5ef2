package dto

type RegisterInput struct {
	Username string `json:"username" binding:"required,notblank,max=150"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type RegisterResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type RefreshInput struct {
	Refresh string `json:"refresh" binding:"required"`
}

type AccessResponse struct {
	Access string `json:"access"`
}

type MeResponse struct {
	Username string `json:"username"`
}
