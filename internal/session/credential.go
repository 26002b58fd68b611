package session

// Credential is the access/refresh bearer pair issued by login or renewal.
// The pair is always written and cleared together; an access token without a
// refresh token is treated as no credential at all.
type Credential struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Complete reports whether both halves of the pair are present.
func (c Credential) Complete() bool {
	return c.AccessToken != "" && c.RefreshToken != ""
}

// Profile is the authenticated user's account record from GET /auth/me.
type Profile struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Headline  string `json:"headline,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
