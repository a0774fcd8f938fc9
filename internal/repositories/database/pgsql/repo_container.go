package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/posledger/pos_ledger_app/internal/core/ports/repositories"
)

type repositoryProvider struct {
	productRepo   portsrepo.ProductRepositoryFacade
	customerRepo  portsrepo.CustomerRepositoryFacade
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	templateRepo  portsrepo.TemplateRepositoryFacade
	raffleRepo    portsrepo.RaffleRepositoryFacade
	reportingRepo portsrepo.ReportingRepository
}

// NewRepositoryProvider wires every repository onto one pool. The ledger
// repository gets the product and customer repositories injected so batch
// commits can reuse their in-transaction operations.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	productRepo := newPgxProductRepository(dbPool)
	customerRepo := newPgxCustomerRepository(dbPool)
	ledgerRepo := newPgxLedgerRepository(dbPool, productRepo, customerRepo)
	templateRepo := newPgxTemplateRepository(dbPool)
	raffleRepo := newPgxRaffleRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return &repositoryProvider{
		productRepo:   productRepo,
		customerRepo:  customerRepo,
		ledgerRepo:    ledgerRepo,
		templateRepo:  templateRepo,
		raffleRepo:    raffleRepo,
		reportingRepo: reportingRepo,
	}
}

func (p *repositoryProvider) Products() portsrepo.ProductRepositoryFacade   { return p.productRepo }
func (p *repositoryProvider) Customers() portsrepo.CustomerRepositoryFacade { return p.customerRepo }
func (p *repositoryProvider) Ledger() portsrepo.LedgerRepositoryFacade      { return p.ledgerRepo }
func (p *repositoryProvider) Templates() portsrepo.TemplateRepositoryFacade { return p.templateRepo }
func (p *repositoryProvider) Raffles() portsrepo.RaffleRepositoryFacade     { return p.raffleRepo }
func (p *repositoryProvider) Reporting() portsrepo.ReportingRepository      { return p.reportingRepo }
