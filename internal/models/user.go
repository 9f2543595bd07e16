package models

// User is the profile of the signed-in user.
type User struct {
	ID          int64        `json:"id"`
	Username    string       `json:"username"`
	Email       string       `json:"email"`
	FirstName   string       `json:"firstName"`
	LastName    string       `json:"lastName"`
	Phone       string       `json:"phone,omitempty"`
	BankAccount *BankAccount `json:"bankAccount,omitempty"`
}
