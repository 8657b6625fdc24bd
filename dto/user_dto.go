package dto

type RegisterUserDTO struct {
	Username string  `json:"username" binding:"required"`
	Password string  `json:"password" binding:"required,min=6"`
	Email    *string `json:"email" binding:"omitempty,email"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserDTO struct {
	OldPassword *string `json:"old_password"`
	Password    *string `json:"password"`
	Email       *string `json:"email" binding:"omitempty,email"`
	FullName    *string `json:"full_name"`
	Phone       *string `json:"phone"`
	Role        *string `json:"role" binding:"omitempty,oneof=citizen staff admin"`
	Department  *string `json:"department"`
}
