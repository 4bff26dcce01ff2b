package dto

// RoleRequest describes role registration/widening payload.
type RoleRequest struct {
	Role string `json:"role"`
}

// RoleResponse describes the role of an account.
type RoleResponse struct {
	Account int64  `json:"account"`
	Role    string `json:"role"`
}
