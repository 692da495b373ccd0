package auth

import (
	"fmt"

	"github.com/Luapxanna/ops-pilot/internal/models"
)

// AuthorizationError is returned when an identity lacks a required role.
type AuthorizationError struct {
	Role     models.Role
	Required []models.Role
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("role %s is not allowed to perform this operation (requires one of %v)", e.Role, e.Required)
}

// Authorize checks that the identity holds one of the allowed roles.
// An empty allowed set means any authenticated identity passes.
func Authorize(identity Identity, allowed ...models.Role) error {
	if len(allowed) == 0 {
		return nil
	}
	for _, role := range allowed {
		if identity.Role == role {
			return nil
		}
	}
	return &AuthorizationError{Role: identity.Role, Required: allowed}
}
