package auth

import "github.com/gin-gonic/gin"

// Caller is the authenticated identity behind a request.
type Caller struct {
	UserID int64
	Roles  []Role
}

type Capability string

const (
	ManageReservations Capability = "reservations:manage"
	ManageEquipment    Capability = "equipment:manage"
	RecordHistory      Capability = "history:record"
)

var grants = map[Role][]Capability{
	RoleStudio: {ManageReservations, ManageEquipment, RecordHistory},
	RoleAdmin:  {ManageReservations, ManageEquipment, RecordHistory},
}

// Can reports whether any of the caller's roles grants capability.
func Can(c Caller, capability Capability) bool {
	for _, role := range c.Roles {
		for _, granted := range grants[role] {
			if granted == capability {
				return true
			}
		}
	}
	return false
}

// CallerFromNames builds a caller from token claims, dropping unknown roles.
func CallerFromNames(userID int64, names []string) Caller {
	c := Caller{UserID: userID}
	for _, n := range names {
		if r := Role(n); r.Valid() {
			c.Roles = append(c.Roles, r)
		}
	}
	return c
}

const callerKey = "caller"

func SetCaller(c *gin.Context, caller Caller) {
	c.Set(callerKey, caller)
	c.Set("user_id", caller.UserID)
}

func CallerFrom(c *gin.Context) (Caller, bool) {
	v, ok := c.Get(callerKey)
	if !ok {
		return Caller{}, false
	}
	caller, ok := v.(Caller)
	return caller, ok
}
