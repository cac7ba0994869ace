package domain

import "github.com/lib/pq"

// Caller is the identity attached to a request by the identity middleware.
// A nil *Caller means the request is anonymous.
type Caller struct {
	Id       UserId
	Username Username
	Groups   pq.Int64Array
	Staff    bool
}

// InAnyGroup reports whether the caller belongs to at least one of the given
// groups. The EveryoneGroup sentinel matches any caller, including anonymous.
func (c *Caller) InAnyGroup(groups []GroupId) bool {
	for _, g := range groups {
		if g == EveryoneGroup {
			return true
		}
		if c == nil {
			continue
		}
		for _, mine := range c.Groups {
			if mine == g {
				return true
			}
		}
	}
	return false
}

// CanSeeWhispers reports whether whisper posts are visible to the caller.
func (c *Caller) CanSeeWhispers() bool {
	return c != nil && c.Staff
}
