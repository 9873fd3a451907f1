package model

// Split allocates part of a transaction's amount to one user. A transaction
// has either zero splits or a complete set whose amounts sum exactly to the
// transaction amount.
type Split struct {
	ID            int64
	TransactionID int64
	UserID        int64
	Amount        int64
	Reviewed      bool
}

// SplitLine is one proposed allocation in a split submission.
type SplitLine struct {
	UserID   int64
	Amount   int64
	Reviewed bool
}

// UserSplitTotal aggregates accepted split amounts for one user.
type UserSplitTotal struct {
	UserID int64
	Total  int64
}
