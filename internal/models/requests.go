package models

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// UpdateUserRequest is a partial update. Nil fields are left unchanged.
type UpdateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,min=3,max=30"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,password"`
}

type CreatePostRequest struct {
	Title     string `json:"title" validate:"required,min=3"`
	Content   string `json:"content" validate:"required,min=12"`
	Published *bool  `json:"published"`
}

type UpdatePostRequest struct {
	Title     *string `json:"title" validate:"omitempty,min=3"`
	Content   *string `json:"content" validate:"omitempty,min=12"`
	Published *bool   `json:"published"`
}
