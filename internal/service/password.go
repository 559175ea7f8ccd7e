package service

// PasswordPolicy checks raw password strength before hashing.
//
// The rule is intentionally weak: at least one lowercase and at least one
// uppercase ASCII letter, with no minimum length and no common-password
// check. This matches the behavior existing clients depend on; strengthen it
// only with a coordinated rollout.
type PasswordPolicy struct{}

func NewPasswordPolicy() *PasswordPolicy {
	return &PasswordPolicy{}
}

var _ Passwords = (*PasswordPolicy)(nil)

// Validate reports whether raw contains at least one lowercase and at least
// one uppercase ASCII letter. Order, length, digits and symbols are
// irrelevant. Empty strings are rejected by the required-credential check
// upstream, not here (they fail anyway: no letters at all).
func (p *PasswordPolicy) Validate(raw string) bool {
	var lower, upper bool
	for i := 0; i < len(raw); i++ {
		switch c := raw[i]; {
		case 'a' <= c && c <= 'z':
			lower = true
		case 'A' <= c && c <= 'Z':
			upper = true
		}
	}
	return lower && upper
}
