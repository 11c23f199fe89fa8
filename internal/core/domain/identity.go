package domain

// Role is the single effective role of an identity.
type Role string

const (
	RoleAdmin   Role = "ROLE_ADMIN"
	RoleDoctor  Role = "ROLE_DOCTOR"
	RolePatient Role = "ROLE_PATIENT"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleDoctor, RolePatient:
		return true
	}
	return false
}

// ResolveRole collapses a set of role claims to one role.
// ADMIN beats DOCTOR beats PATIENT; no recognised claim means PATIENT.
func ResolveRole(claims []string) Role {
	var doctor bool
	for _, c := range claims {
		switch Role(c) {
		case RoleAdmin:
			return RoleAdmin
		case RoleDoctor:
			doctor = true
		}
	}
	if doctor {
		return RoleDoctor
	}
	return RolePatient
}

// Identity is the user record derived from a credential.
type Identity struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Role      Role   `json:"role"`
}

// DisplayName joins first and last name, falling back to the email.
func (i Identity) DisplayName() string {
	switch {
	case i.FirstName != "" && i.LastName != "":
		return i.FirstName + " " + i.LastName
	case i.FirstName != "":
		return i.FirstName
	default:
		return i.Email
	}
}

// Snapshot is the denormalized identity copy persisted at login.
type Snapshot struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Identity widens the snapshot back to an Identity.
func (s Snapshot) Identity() Identity {
	return Identity{ID: s.ID, Email: s.Email, Role: s.Role}
}
