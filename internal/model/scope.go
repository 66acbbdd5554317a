package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin        Role = "admin"
	RoleJudge        Role = "judge"
	RolePhotographer Role = "photographer"
)

// Principal is the caller resolved from a verified bearer token.
type Principal struct {
	UserID uuid.UUID
	Role   Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

func (p Principal) IsJudge() bool {
	return p.Role == RoleJudge
}

func (p Principal) HasRole(roles ...Role) bool {
	for _, role := range roles {
		if p.Role == role {
			return true
		}
	}
	return false
}
