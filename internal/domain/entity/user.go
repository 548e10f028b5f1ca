package entity

import "time"

// User usuário do sistema. Role decide o que o RBAC permite
// (ver internal/domain/authz).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         string // authz.RoleAdmin | RoleEmployee | RoleClient
	ClientID     string // preenchido quando Role == CLIENT
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
