package model

// User is a person splits can be allocated to. Identity (email) comes from
// the authentication collaborator; the core only references users by ID.
type User struct {
	Email string
	Name  string
	ID    int64
}
