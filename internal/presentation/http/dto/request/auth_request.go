package request

// LoginRequest represents an operator PIN login
type LoginRequest struct {
	Operator string `json:"operator" binding:"omitempty,max=64"`
	PIN      string `json:"pin" binding:"required,min=4,max=12"`
}
