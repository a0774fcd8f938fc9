package repositories

// RepositoryProvider aggregates every repository facade the services need.
// The pgsql package returns a container implementing this from one pool.
type RepositoryProvider interface {
	Products() ProductRepositoryFacade
	Customers() CustomerRepositoryFacade
	Ledger() LedgerRepositoryFacade
	Templates() TemplateRepositoryFacade
	Raffles() RaffleRepositoryFacade
	Reporting() ReportingRepository
}
