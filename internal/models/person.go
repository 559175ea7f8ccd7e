package models

// Person is the persisted user account record.
// Password carries the raw password on input and the bcrypt hash on output;
// the store only ever holds the hash. ID == 0 means "not yet persisted".
type Person struct {
	ID        int    `json:"id"`
	Login     string `json:"login"`
	Password  string `json:"password,omitempty"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}
