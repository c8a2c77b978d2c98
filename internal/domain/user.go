package domain

type UserRole string

const (
	UserRoleAdmin    UserRole = "ADMIN"
	UserRolePromoter UserRole = "PROMOTER"
	UserRoleClient   UserRole = "CLIENT"
)

type User struct {
	ID           int32    `json:"id"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Name         string   `json:"name"`
	Role         UserRole `json:"role"`
	CreatedOn    string   `json:"created_on"`
	UpdatedOn    string   `json:"updated_on"`
}
