package models

// User is a row of the users table.
type User struct {
	UserID            string  `db:"user_id"`
	Role              string  `db:"role"`
	Name              string  `db:"name"`
	Username          string  `db:"username"`
	Email             *string `db:"email"`
	PasswordHash      string  `db:"password_hash"`
	Phone             *string `db:"phone"`
	BankName          *string `db:"bank_name"`
	BankAccountNumber *string `db:"bank_account_number"`
	BankAccountHolder *string `db:"bank_account_holder"`
	IsActive          bool    `db:"is_active"`
	AuditFields
}
