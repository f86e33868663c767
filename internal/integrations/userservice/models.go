package userservice

// Роли пользователей в UserService
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User модель пользователя из UserService
type User struct {
	ID          int64  `json:"id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// IsAdmin возвращает true для пользователя с административной ролью
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
