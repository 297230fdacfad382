package domain

import "time"

// UserRole is the moderation role of a user
type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

// UserStatus is the single lifecycle state of an account.
// Deleted is a soft state: the row stays, content stays attributed.
type UserStatus string

const (
	StatusActive  UserStatus = "active"
	StatusBanned  UserStatus = "banned"
	StatusDeleted UserStatus = "deleted"
)

// User represents a forum account
type User struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Username    string     `gorm:"column:username;type:varchar(50);uniqueIndex" json:"username"`
	Email       string     `gorm:"column:email;type:varchar(255);uniqueIndex" json:"email"`
	Password    string     `gorm:"column:password;type:varchar(255)" json:"-"`
	Role        UserRole   `gorm:"column:role;type:enum('user','admin');default:'user'" json:"role"`
	Status      UserStatus `gorm:"column:status;type:enum('active','banned','deleted');default:'active';index" json:"status"`
	BanReason   *string    `gorm:"column:ban_reason;type:varchar(255)" json:"ban_reason,omitempty"`
	BannedUntil *time.Time `gorm:"column:banned_until" json:"banned_until,omitempty"`
	BannedBy    *uint64    `gorm:"column:banned_by" json:"banned_by,omitempty"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// IsAdmin reports whether the user holds the admin role
func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// IsDeleted reports whether the account was soft-deleted
func (u *User) IsDeleted() bool { return u.Status == StatusDeleted }

// IsBanned reports whether a ban is in effect at the given instant.
// A banned_until in the past means the ban has lapsed.
func (u *User) IsBanned(now time.Time) bool {
	if u.Status != StatusBanned {
		return false
	}
	if u.BannedUntil != nil && u.BannedUntil.Before(now) {
		return false
	}
	return true
}

// RegisterRequest payload for POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest payload for POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// BanRequest payload for POST /api/admin/users/:id/ban
type BanRequest struct {
	Reason string     `json:"reason"`
	Until  *time.Time `json:"until,omitempty"`
}

// SetRoleRequest payload for PUT /api/admin/users/:id/role
type SetRoleRequest struct {
	Role UserRole `json:"role" binding:"required,oneof=user admin"`
}

// UserProfile is the public view of a user
type UserProfile struct {
	ID        uint64     `json:"id"`
	Username  string     `json:"username"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
}

// ToProfile strips credentials and ban bookkeeping
func (u *User) ToProfile() *UserProfile {
	return &UserProfile{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}
