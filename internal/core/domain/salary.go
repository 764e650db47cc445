package domain

import "time"

// Salary is the protected per-user resource. Owner holds the username of the
// single user allowed to read it.
type Salary struct {
	Owner       string    `json:"owner" bson:"owner"`
	Amount      float64   `json:"amount" bson:"amount"`
	Currency    string    `json:"currency" bson:"currency"`
	NextRaiseAt time.Time `json:"next_raise_at" bson:"next_raise_at"`
}

// OwnedBy reports whether username owns the salary record.
func (s *Salary) OwnedBy(username string) bool {
	return s != nil && s.Owner == username
}
