package service

import "github.com/Yurchenkopi/job4j-auth/internal/models"

// The partial-update merge works off a static field table instead of runtime
// reflection: one entry per mergeable Person field, pairing a non-emptiness
// check with a copy action. Adding a field to models.Person requires adding
// a rule here; the compiler catches a renamed or removed field.

type fieldRule struct {
	name  string
	isSet func(p *models.Person) bool
	copy  func(dst, src *models.Person)
}

// personFields enumerates every Person field except the identity field,
// which is only ever used to locate the target record.
var personFields = []fieldRule{
	{
		name:  "login",
		isSet: func(p *models.Person) bool { return p.Login != "" },
		copy:  func(dst, src *models.Person) { dst.Login = src.Login },
	},
	{
		name:  "password",
		isSet: func(p *models.Person) bool { return p.Password != "" },
		copy:  func(dst, src *models.Person) { dst.Password = src.Password },
	},
	{
		name:  "first_name",
		isSet: func(p *models.Person) bool { return p.FirstName != "" },
		copy:  func(dst, src *models.Person) { dst.FirstName = src.FirstName },
	},
	{
		name:  "last_name",
		isSet: func(p *models.Person) bool { return p.LastName != "" },
		copy:  func(dst, src *models.Person) { dst.LastName = src.LastName },
	},
}

// MergePerson overwrites every field of current for which partial carries a
// non-empty value and returns current. Fields merge independently; the id is
// never copied, so merge(current, partial).ID == current.ID always holds.
// A present-but-empty value is indistinguishable from an absent one, which
// means a field cannot be cleared through a partial update.
func MergePerson(current, partial *models.Person) *models.Person {
	for _, f := range personFields {
		if f.isSet(partial) {
			f.copy(current, partial)
		}
	}
	return current
}

// PersonFieldNames returns the wire names a partial payload may carry,
// identity field included. Payload keys outside this set cannot be
// reconciled with the entity and are rejected as a structural mismatch.
func PersonFieldNames() map[string]struct{} {
	names := make(map[string]struct{}, len(personFields)+1)
	names["id"] = struct{}{}
	for _, f := range personFields {
		names[f.name] = struct{}{}
	}
	return names
}
