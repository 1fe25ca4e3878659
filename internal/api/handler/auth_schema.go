package handler

// messageResponse is the envelope for plain confirmation and error messages.
type messageResponse struct {
	Message string `json:"message"`
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
	Address  string `json:"address,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// userResponse is the public view of an account. The password hash is never
// part of any response.
type userResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Address  string `json:"address"`
}

type loginResponse struct {
	AccessToken string       `json:"access_token"`
	User        userResponse `json:"user"`
}

type profileResponse struct {
	Message string       `json:"message,omitempty"`
	User    userResponse `json:"user"`
}

type updateProfileRequest struct {
	Address *string `json:"address"`
}
