package auth

// LoginRequest is the admin login payload.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate returns a message describing the first invalid field, or "".
func (r *LoginRequest) Validate() string {
	if r.Username == "" {
		return "username is required"
	}
	if r.Password == "" {
		return "password is required"
	}
	return ""
}

// AdminInfo is the admin profile returned alongside a token.
type AdminInfo struct {
	ID          uint     `json:"id"`
	Username    string   `json:"username"`
	Permissions []string `json:"permissions"`
}
