package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/posledger/pos_ledger_app/internal/core/ports/services"
)

// NewServiceContainer wires every service against the repository provider.
// budget is the operating budget subtracted before computing owner splits.
func NewServiceContainer(repos portsrepo.RepositoryProvider, budget decimal.Decimal) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Sale:      NewSaleService(repos.Products(), repos.Customers(), repos.Ledger()),
		Restock:   NewRestockService(repos.Products(), repos.Templates(), repos.Ledger()),
		Payout:    NewPayoutService(repos.Ledger()),
		Raffle:    NewRaffleService(repos.Raffles()),
		Reporting: NewReportingService(repos.Reporting(), repos.Ledger(), budget),
		Product:   NewProductService(repos.Products()),
		Customer:  NewCustomerService(repos.Customers()),
	}
}
