package services

// ServiceContainer aggregates every service facade for handler registration.
type ServiceContainer struct {
	Sale      SaleSvcFacade
	Restock   RestockSvcFacade
	Payout    PayoutSvcFacade
	Raffle    RaffleSvcFacade
	Reporting ReportingSvcFacade
	Product   ProductSvcFacade
	Customer  CustomerSvcFacade
}
