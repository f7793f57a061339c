package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        uint
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
	Role      Role
	CartID    *uuid.UUID
	CreatedAt time.Time
}

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}
