package respond

// RegisterRespond confirms account creation.
type RegisterRespond struct {
	Uuid     string `json:"uuid"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}
