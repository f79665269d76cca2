package security

import (
	"comply/media-api/internal/errs"
	"comply/media-api/internal/model"
)

var roleRank = map[model.Role]int{
	model.RoleUser:  1,
	model.RoleAdmin: 2,
}

// Authorize allows the request if the role in the claims is at least the
// required one. Unknown roles satisfy nothing.
func Authorize(c *Claims, required model.Role) error {
	if c == nil {
		return errs.ErrUnauthenticated
	}

	have, ok := roleRank[c.Role]
	if !ok {
		return errs.ErrForbidden
	}

	need, ok := roleRank[required]
	if !ok || have < need {
		return errs.ErrForbidden
	}

	return nil
}

func ValidRole(r model.Role) bool {
	_, ok := roleRank[r]
	return ok
}
