package request_models

type CreateAccountRequest struct {
	Name       string `json:"name" binding:"required,max=100"`
	LtcAddress string `json:"ltc_address" binding:"required,max=128"`
}

// UpdateAccountRequest leaves a field untouched when it is omitted.
type UpdateAccountRequest struct {
	Name       *string `json:"name" binding:"omitempty,max=100"`
	LtcAddress *string `json:"ltc_address" binding:"omitempty,max=128"`
}
