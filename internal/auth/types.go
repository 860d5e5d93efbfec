package auth

// User is the public view of an account.
type User struct {
	Username  string `json:"username"`
	CreatedAt string `json:"created_at"`
	QuizCount int    `json:"quiz_count"`
}

// TokenPair holds access and refresh tokens.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// RegisterRequest for username/password signup.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest for username/password authentication.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
