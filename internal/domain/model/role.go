package model

// Role describes the permission class of an account.
type Role string

const (
	RoleBuyer  Role = "BUYER"
	RoleSeller Role = "SELLER"
	RoleBoth   Role = "BOTH"
)

// Valid reports whether the value is one of the known role tags.
func (r Role) Valid() bool {
	switch r {
	case RoleBuyer, RoleSeller, RoleBoth:
		return true
	}
	return false
}

// IsBuyer reports whether the role grants buyer capability.
func (r Role) IsBuyer() bool {
	return r == RoleBuyer || r == RoleBoth
}

// IsSeller reports whether the role grants seller capability.
func (r Role) IsSeller() bool {
	return r == RoleSeller || r == RoleBoth
}

// Widen merges another role into this one. Capabilities are only ever added:
// an attempt to narrow (e.g. BOTH widened with BUYER) is absorbed and the
// result keeps every capability already granted.
func (r Role) Widen(other Role) Role {
	switch {
	case r == RoleBoth || other == RoleBoth:
		return RoleBoth
	case r == RoleBuyer && other == RoleSeller:
		return RoleBoth
	case r == RoleSeller && other == RoleBuyer:
		return RoleBoth
	default:
		return r
	}
}
