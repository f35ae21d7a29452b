package domain

// Token is the single persisted OAuth credential record.
// A nil *Token means the user is not authenticated.
type Token struct {
	AccessToken string `json:"access_token" db:"access_token"`
	UserID      string `json:"user_id"      db:"user_id"`
}

// Valid reports whether the record carries an access token.
func (t *Token) Valid() bool {
	return t != nil && t.AccessToken != ""
}

// TokenPair holds the OAuth2 tokens returned after code exchange.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int    `json:"expires_in"`
	TokenType    string `json:"token_type"`
}

// PersonURNPrefix namespaces a member id into an author/owner URN.
const PersonURNPrefix = "urn:li:person:"

// PersonURN returns the identity URN for a platform user id.
func PersonURN(userID string) string {
	return PersonURNPrefix + userID
}
