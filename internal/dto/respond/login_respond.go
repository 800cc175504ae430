package respond

// LoginRespond carries the authenticated profile and token pair.
type LoginRespond struct {
	Uuid         string `json:"uuid"`
	Email        string `json:"email"`
	FullName     string `json:"full_name"`
	Role         string `json:"role"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
