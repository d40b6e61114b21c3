package services

// ServiceContainer bundles every service facade for injection into the
// HTTP layer.
type ServiceContainer struct {
	Ledger     LedgerSvcFacade
	Recurring  RecurringSvcFacade
	Debt       DebtSvcFacade
	Settlement SettlementSvcFacade
	Dashboard  DashboardSvcFacade
	Account    AccountSvcFacade
}
