package response_models

// PageView is what a browsable route would hand to its template.
type PageView struct {
	Page     string            `json:"page"`
	User     *UserResponse     `json:"user,omitempty"`
	Accounts []AccountResponse `json:"accounts,omitempty"`
	Account  *AccountResponse  `json:"account,omitempty"`
	Error    string            `json:"error,omitempty"`
}
