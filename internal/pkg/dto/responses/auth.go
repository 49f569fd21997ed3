package responses

type LoginUser struct {
	Token string `json:"token"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}
