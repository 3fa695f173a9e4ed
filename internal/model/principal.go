package model

import "github.com/google/uuid"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleOperator Role = "OPERATOR"
	RoleAnalyst  Role = "ANALYST"
	RoleCitizen  Role = "CITIZEN"
)

type Principal struct {
	UserID uuid.UUID
	OrgID  *uuid.UUID
	Role   Role
}

func (p Principal) IsCitizen() bool {
	return p.Role == RoleCitizen
}

func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
