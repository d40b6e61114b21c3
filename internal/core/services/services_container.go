package services

import (
	portsrepo "github.com/pesotrack/pesotrack_app/internal/core/ports/repositories"
	portssvc "github.com/pesotrack/pesotrack_app/internal/core/ports/services"
)

// RepositoryBundle groups the repositories the service layer is built on.
type RepositoryBundle struct {
	Transactions portsrepo.TransactionRepository
	Recurring    portsrepo.RecurringRepository
	Debts        portsrepo.DebtRepository
	Accounts     portsrepo.AccountRepository
}

// NewServiceContainer wires every service facade over the given repositories.
func NewServiceContainer(repos RepositoryBundle) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		Ledger:     NewLedgerService(repos.Transactions),
		Recurring:  NewRecurringService(repos.Recurring),
		Debt:       NewDebtService(repos.Debts),
		Settlement: NewSettlementService(repos.Transactions, repos.Recurring, repos.Debts, repos.Accounts),
		Dashboard:  NewDashboardService(repos.Transactions, repos.Recurring),
		Account:    NewAccountService(repos.Accounts),
	}
}
