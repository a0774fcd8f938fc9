package domain

import "github.com/shopspring/decimal"

// Customer holds a prepaid credit balance that account-credit sales debit.
// The store enforces credit_balance >= 0.
//
// Customers are resolved by exact name match at sale time; two buyers sharing
// a name collapse into one record. Deduplication needs an external identifier
// and is deliberately not attempted here.
type Customer struct {
	CustomerID    string          `json:"customerID"`
	Name          string          `json:"name"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	AuditFields
}
