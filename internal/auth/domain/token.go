package domain

// TokenPair is what a successful login or refresh hands back: a short-lived
// access token and a longer-lived refresh token, both signed JWTs.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"` // always "Bearer"
	ExpiresIn    int64  `json:"expires_in"` // access token lifetime in seconds
}
