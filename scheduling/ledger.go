package scheduling

import (
	"sort"
	"time"

	"axis-backend/models"
)

// CashMethod is the payment method routed to the cash drawer; every other
// method settles on the bank account.
const CashMethod = "Cash"

type TransactionType string

const (
	TransactionIncome   TransactionType = "income"
	TransactionExpense  TransactionType = "expense"
	TransactionTransfer TransactionType = "transfer"
)

// Transaction is a derived statement line; it is never persisted.
type Transaction struct {
	ID            string          `json:"id"`
	Date          time.Time       `json:"date"`
	Description   string          `json:"description"`
	Amount        float64         `json:"amount"`
	Type          TransactionType `json:"type"`
	PaymentMethod string          `json:"paymentMethod,omitempty"`
}

// BuildTransactions flattens the cash-relevant events into statement lines:
// final payments of completed appointments (at their end time), confirmed
// advances (at booking time), paid expenses, and drawer-to-account transfers.
func BuildTransactions(appointments []models.Appointment, expenses []models.Expense, transfers []models.Transfer) []Transaction {
	var txs []Transaction

	for i := range appointments {
		appt := &appointments[i]
		if appt.Status == models.StatusCompleted && appt.FinalAmountPaid != nil {
			txs = append(txs, Transaction{
				ID:            "appt-final-" + appt.ID.String(),
				Date:          appt.EndTime,
				Description:   "Service: " + appt.ClientName,
				Amount:        *appt.FinalAmountPaid,
				Type:          TransactionIncome,
				PaymentMethod: appt.PaymentMethod,
			})
		}
		if appt.AdvanceConfirmed && appt.AdvanceAmount > 0 {
			txs = append(txs, Transaction{
				ID:            "appt-advance-" + appt.ID.String(),
				Date:          appt.CreatedAt,
				Description:   "Advance: " + appt.ClientName,
				Amount:        appt.AdvanceAmount,
				Type:          TransactionIncome,
				PaymentMethod: appt.AdvanceMethod,
			})
		}
	}

	for i := range expenses {
		exp := &expenses[i]
		if !exp.Paid {
			continue
		}
		txs = append(txs, Transaction{
			ID:            "expense-" + exp.ID.String(),
			Date:          exp.Date,
			Description:   exp.Description,
			Amount:        exp.Amount,
			Type:          TransactionExpense,
			PaymentMethod: exp.PaymentMethod,
		})
	}

	for i := range transfers {
		tr := &transfers[i]
		txs = append(txs, Transaction{
			ID:          "transfer-" + tr.ID.String(),
			Date:        tr.Date,
			Description: "Transfer to account",
			Amount:      tr.Amount,
			Type:        TransactionTransfer,
		})
	}

	return txs
}

type Balances struct {
	Account         float64 `json:"accountBalance"`
	Cash            float64 `json:"cashBalance"`
	Total           float64 `json:"totalBalance"`
	PendingAdvances float64 `json:"pendingAdvances"`
	Available       float64 `json:"availableBalance"`
}

// ComputeBalances folds the transaction list into running balances.
// pendingAdvances is money already in the drawer for appointments not yet
// completed; it is held back from the available balance.
func ComputeBalances(txs []Transaction, pendingAdvances float64) Balances {
	var b Balances
	for _, tx := range txs {
		switch tx.Type {
		case TransactionIncome:
			if tx.PaymentMethod == CashMethod {
				b.Cash += tx.Amount
			} else {
				b.Account += tx.Amount
			}
		case TransactionExpense:
			if tx.PaymentMethod == CashMethod {
				b.Cash -= tx.Amount
			} else {
				b.Account -= tx.Amount
			}
		case TransactionTransfer:
			b.Cash -= tx.Amount
			b.Account += tx.Amount
		}
	}
	b.Total = b.Account + b.Cash
	b.PendingAdvances = pendingAdvances
	b.Available = b.Total - pendingAdvances
	return b
}

// FilterMonth keeps the transactions falling within ref's month and sorts
// them newest first.
func FilterMonth(txs []Transaction, ref time.Time) []Transaction {
	first := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	next := first.AddDate(0, 1, 0)

	monthTxs := []Transaction{}
	for _, tx := range txs {
		d := tx.Date.In(ref.Location())
		if !d.Before(first) && d.Before(next) {
			monthTxs = append(monthTxs, tx)
		}
	}
	sort.SliceStable(monthTxs, func(i, j int) bool {
		return monthTxs[i].Date.After(monthTxs[j].Date)
	})
	return monthTxs
}

type MonthSummary struct {
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// SummarizeMonth totals a month's income and expenses. Transfers move money
// between balances and do not affect the summary.
func SummarizeMonth(txs []Transaction) MonthSummary {
	var s MonthSummary
	for _, tx := range txs {
		switch tx.Type {
		case TransactionIncome:
			s.Revenue += tx.Amount
		case TransactionExpense:
			s.Expenses += tx.Amount
		}
	}
	s.Net = s.Revenue - s.Expenses
	return s
}
