package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mfadlih/cukurid-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	EmployeeID uuid.UUID
	OutletID   *uuid.UUID
	Role       enums.EmployeeRole
	JTI        string
}

// AccessTokenClaims represents the typed JWT presented by POS clients.
type AccessTokenClaims struct {
	EmployeeID uuid.UUID          `json:"employee_id"`
	OutletID   *uuid.UUID         `json:"outlet_id,omitempty"`
	Role       enums.EmployeeRole `json:"role"`
	jwt.RegisteredClaims
}
