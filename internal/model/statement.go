package model

// BankStatement is the normalized shape of a bank export handed to the
// importer. Dates are raw YYYYMMDD strings and amounts are raw decimal
// strings in major units, exactly as banks emit them; parsing and scaling
// happen inside the importer so a malformed line fails the whole batch.
type BankStatement struct {
	AccountNumber string          `json:"accountNumber"`
	StartDate     string          `json:"startDate"`
	EndDate       string          `json:"endDate"`
	Transactions  []StatementLine `json:"transactions"`
}

// StatementLine is one transaction line within a bank statement.
type StatementLine struct {
	Type   string `json:"transactionType"`
	Date   string `json:"date"`
	Amount string `json:"amount"`
	BankID string `json:"bankId"`
	Name   string `json:"name"`
	Memo   string `json:"memo"`
}
