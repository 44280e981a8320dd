package models

// UserRole yetkilendirmenin tek eksenidir.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleEditor UserRole = "editor"
)

// Valid rolün tanımlı rollerden biri olup olmadığını söyler.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleEditor
}

// User sisteme kayıtlı kullanıcı.
type User struct {
	BaseModel
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);not null;default:'editor'" json:"role"`
}

// Identity doğrulanmış bir kullanıcının oturumda taşınan özeti.
type Identity struct {
	ID    uint     `json:"id"`
	Email string   `json:"email"`
	Role  UserRole `json:"role"`
}

// IsAdmin kimliğin admin rolünde olup olmadığını söyler.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Identity kullanıcı kaydından kimlik özetini üretir.
func (u *User) Identity() *Identity {
	return &Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}
