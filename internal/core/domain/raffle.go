package domain

import "github.com/shopspring/decimal"

// Raffle sells sequentially numbered tickets. NextTicketNumber is a counter
// bumped under row lock during each sale, so numbers are gapless from the
// existing maximum and never collide under concurrency.
type Raffle struct {
	RaffleID         string          `json:"raffleID"`
	Name             string          `json:"name"`
	TicketPrice      decimal.Decimal `json:"ticketPrice"`
	NextTicketNumber int64           `json:"nextTicketNumber"`
	AuditFields
}

// RaffleTicket is one issued ticket. SequenceNumber is unique per raffle.
type RaffleTicket struct {
	TicketID       string          `json:"ticketID"`
	RaffleID       string          `json:"raffleID"`
	BatchID        string          `json:"batchID"`
	SequenceNumber int64           `json:"sequenceNumber"`
	Buyer          string          `json:"buyer"`
	Price          decimal.Decimal `json:"price"`
	PaymentStatus  PaymentStatus   `json:"paymentStatus"`
	AuditFields
}
