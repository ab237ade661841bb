package api

// RegisterRequest запрос регистрации нового пользователя
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=64"`
	Password string `json:"password" validate:"required,min=8"`
}

// RegisterResponse ответ на успешную регистрацию
type RegisterResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// LoginRequest запрос аутентификации
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// TokenResponse ответ с access token
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"` // всегда "Bearer"
	ExpiresIn   int64  `json:"expires_in"` // секунды до истечения
	UserID      string `json:"user_id"`
}

// ErrorResponse стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
