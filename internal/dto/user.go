package dto

// CreateMitraRequest defines the data needed to register a partner account.
type CreateMitraRequest struct {
	Name              string  `json:"name" binding:"required,max=120"`
	Username          string  `json:"username" binding:"required,alphanum,min=3,max=50"`
	Password          string  `json:"password" binding:"required,min=8"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             string  `json:"phone" binding:"omitempty,phone"`
	BankName          string  `json:"bankName"`
	BankAccountNumber string  `json:"bankAccountNumber" binding:"omitempty,numeric"`
	BankAccountHolder string  `json:"bankAccountHolder"`
}

// UpdateMitraRequest defines the editable partner fields.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateMitraRequest struct {
	Name              *string `json:"name" binding:"omitempty,max=120"`
	Email             *string `json:"email" binding:"omitempty,email"`
	Phone             *string `json:"phone" binding:"omitempty,phone"`
	BankName          *string `json:"bankName"`
	BankAccountNumber *string `json:"bankAccountNumber" binding:"omitempty,numeric"`
	BankAccountHolder *string `json:"bankAccountHolder"`
}

// SetActiveRequest activates or deactivates a partner.
type SetActiveRequest struct {
	IsActive *bool `json:"isActive" binding:"required"`
}

// ListMitrasParams defines query parameters for listing partners.
type ListMitrasParams struct {
	ActiveOnly bool `form:"activeOnly"`
	PageParams
}

// ListUsersResponse wraps the list of users.
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}
