package dto

import (
	"github.com/shopspring/decimal"

	"github.com/posledger/pos_ledger_app/internal/core/domain"
)

// CreateRaffleRequest creates a raffle with a fixed ticket price.
type CreateRaffleRequest struct {
	Name        string          `json:"name" binding:"required"`
	TicketPrice decimal.Decimal `json:"ticketPrice" binding:"required"`
}

// RaffleResponse is one raffle header.
type RaffleResponse struct {
	RaffleID    string          `json:"raffleID"`
	Name        string          `json:"name"`
	TicketPrice decimal.Decimal `json:"ticketPrice"`
	TicketsSold int64           `json:"ticketsSold"`
}

// RaffleTicketResponse is one issued ticket.
type RaffleTicketResponse struct {
	TicketID       string          `json:"ticketID"`
	SequenceNumber int64           `json:"sequenceNumber"`
	Buyer          string          `json:"buyer"`
	Price          decimal.Decimal `json:"price"`
	PaymentStatus  string          `json:"paymentStatus"`
}

// RaffleDetailResponse is a raffle with its issued tickets.
type RaffleDetailResponse struct {
	RaffleResponse
	Tickets []RaffleTicketResponse `json:"tickets"`
}

// SellTicketsRequest buys quantity sequentially numbered tickets.
type SellTicketsRequest struct {
	Buyer    string `json:"buyer" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
	Paid     *bool  `json:"paid,omitempty"` // defaults to true
}

// SellTicketsResponse lists the allocated ticket numbers.
type SellTicketsResponse struct {
	BatchID       string          `json:"batchID"`
	TicketNumbers []int64         `json:"ticketNumbers"`
	Total         decimal.Decimal `json:"total"`
}

// ToRaffleResponse converts a domain.Raffle. TicketsSold equals the counter,
// which is the highest issued sequence number.
func ToRaffleResponse(r *domain.Raffle) RaffleResponse {
	return RaffleResponse{
		RaffleID:    r.RaffleID,
		Name:        r.Name,
		TicketPrice: r.TicketPrice,
		TicketsSold: r.NextTicketNumber,
	}
}

// ToRaffleTicketResponses converts issued tickets.
func ToRaffleTicketResponses(tickets []domain.RaffleTicket) []RaffleTicketResponse {
	responses := make([]RaffleTicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = RaffleTicketResponse{
			TicketID:       t.TicketID,
			SequenceNumber: t.SequenceNumber,
			Buyer:          t.Buyer,
			Price:          t.Price,
			PaymentStatus:  string(t.PaymentStatus),
		}
	}
	return responses
}
