package controllers

import (
	"errors"
	"net/http"
	"time"

	"axis-backend/config"
	"axis-backend/models"
	"axis-backend/scheduling"
	"axis-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ExpenseInput struct {
	Description string   `json:"description" binding:"required"`
	Amount      *float64 `json:"amount" binding:"required"`
	Date        string   `json:"date" binding:"required"` // YYYY-MM-DD
	Recurring   bool     `json:"recurring"`
}

type PayExpenseInput struct {
	PaymentMethod string `json:"paymentMethod" binding:"required"`
}

type TransferInput struct {
	Amount *float64 `json:"amount" binding:"required"`
	Date   string   `json:"date" binding:"required"` // YYYY-MM-DD
}

// materializeRecurringExpenses re-creates recurring expense templates in the
// viewed month when no expense with the same description exists there yet.
// New copies are unpaid; the day of month is clamped to the month's length.
func materializeRecurringExpenses(userUUID uuid.UUID, first, last time.Time) error {
	var templates []models.Expense
	if err := config.DB.Where("user_id = ? AND recurring = ? AND date < ?", userUUID, true, first).
		Find(&templates).Error; err != nil {
		return err
	}
	if len(templates) == 0 {
		return nil
	}

	var monthExpenses []models.Expense
	if err := config.DB.Where("user_id = ? AND date >= ? AND date <= ?", userUUID, first, last).
		Find(&monthExpenses).Error; err != nil {
		return err
	}

	present := make(map[string]bool, len(monthExpenses))
	for _, e := range monthExpenses {
		present[e.Description] = true
	}

	var created []models.Expense
	for _, tpl := range templates {
		if present[tpl.Description] {
			continue
		}
		present[tpl.Description] = true

		day := tpl.Date.Day()
		if max := last.Day(); day > max {
			day = max
		}
		created = append(created, models.Expense{
			UserID:      userUUID,
			Description: tpl.Description,
			Amount:      tpl.Amount,
			Date:        time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, first.Location()),
			Paid:        false,
			Recurring:   true,
		})
	}

	if len(created) == 0 {
		return nil
	}
	return config.DB.Create(&created).Error
}

// loadLedger assembles every statement line up to the given instant.
func loadLedger(userUUID uuid.UUID, until time.Time) ([]scheduling.Transaction, error) {
	var appointments []models.Appointment
	if err := config.DB.Where("user_id = ? AND created_at <= ?", userUUID, until).
		Find(&appointments).Error; err != nil {
		return nil, err
	}

	var expenses []models.Expense
	if err := config.DB.Where("user_id = ? AND date <= ?", userUUID, until).
		Find(&expenses).Error; err != nil {
		return nil, err
	}

	var transfers []models.Transfer
	if err := config.DB.Where("user_id = ? AND date <= ?", userUUID, until).
		Find(&transfers).Error; err != nil {
		return nil, err
	}

	return scheduling.BuildTransactions(appointments, expenses, transfers), nil
}

// pendingAdvances sums confirmed advances held for appointments that are
// still scheduled; this money sits in the drawer but is not yet earned.
func pendingAdvances(userUUID uuid.UUID) (float64, error) {
	var total float64
	err := config.DB.Model(&models.Appointment{}).
		Where("user_id = ? AND advance_confirmed = ? AND status = ?", userUUID, true, models.StatusScheduled).
		Select("COALESCE(SUM(advance_amount), 0)").Scan(&total).Error
	return total, err
}

// GetCashbox returns the running balances, the selected month's summary and
// statement, and the month's expense list (?month=YYYY-MM)
func GetCashbox(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	ref := time.Now()
	if month := c.Query("month"); month != "" {
		parsed, err := time.ParseInLocation("2006-01", month, time.Local)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid month format, expected YYYY-MM")
			return
		}
		ref = parsed
	}
	first, last := utils.MonthBounds(ref)

	if err := materializeRecurringExpenses(userUUID, first, last); err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to prepare recurring expenses")
		return
	}

	txs, err := loadLedger(userUUID, last)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load financial data")
		return
	}

	pending, err := pendingAdvances(userUUID)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load advance payments")
		return
	}

	balances := scheduling.ComputeBalances(txs, pending)
	monthTxs := scheduling.FilterMonth(txs, first)
	summary := scheduling.SummarizeMonth(monthTxs)

	var monthExpenses []models.Expense
	if err := config.DB.Where("user_id = ? AND date >= ? AND date <= ?", userUUID, first, last).
		Order("date ASC").Find(&monthExpenses).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve expenses")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"balances":  balances,
		"summary":   summary,
		"statement": monthTxs,
		"expenses":  monthExpenses,
	})
}

// CreateExpense registers a new expense
func CreateExpense(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if *input.Amount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
		return
	}

	expense := models.Expense{
		UserID:      userUUID,
		Description: input.Description,
		Amount:      *input.Amount,
		Date:        date,
		Recurring:   input.Recurring,
	}

	if err := config.DB.Create(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create expense")
		return
	}

	c.JSON(http.StatusCreated, expense)
}

// UpdateExpense edits an existing expense
func UpdateExpense(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var input ExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if *input.Amount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
		return
	}

	var expense models.Expense
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, expenseUUID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	expense.Description = input.Description
	expense.Amount = *input.Amount
	expense.Date = date
	expense.Recurring = input.Recurring

	if err := config.DB.Save(&expense).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update expense")
		return
	}

	c.JSON(http.StatusOK, expense)
}

// PayExpense marks an expense as paid with the given method
func PayExpense(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	var input PayExpenseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var expense models.Expense
	if err := config.DB.Where("user_id = ? AND id = ?", userUUID, expenseUUID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if expense.Paid {
		utils.RespondWithError(c, http.StatusConflict, "Expense is already paid")
		return
	}

	updates := map[string]interface{}{
		"paid":           true,
		"payment_method": input.PaymentMethod,
	}
	if err := config.DB.Model(&expense).Updates(updates).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to pay expense")
		return
	}

	expense.Paid = true
	expense.PaymentMethod = input.PaymentMethod
	c.JSON(http.StatusOK, expense)
}

// DeleteExpense removes an expense
func DeleteExpense(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	expenseUUID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid expense ID format")
		return
	}

	result := config.DB.Where("user_id = ? AND id = ?", userUUID, expenseUUID).
		Delete(&models.Expense{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete expense")
		return
	}

	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Expense not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Expense deleted successfully"})
}

// CreateTransfer moves money from the cash drawer to the bank account. The
// amount may not exceed the current cash balance.
func CreateTransfer(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var input TransferInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := time.ParseInLocation("2006-01-02", input.Date, time.Local)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
		return
	}
	if *input.Amount <= 0 {
		utils.RespondWithError(c, http.StatusBadRequest, "Amount must be positive")
		return
	}

	txs, err := loadLedger(userUUID, time.Now())
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to load financial data")
		return
	}
	balances := scheduling.ComputeBalances(txs, 0)
	if *input.Amount > balances.Cash {
		utils.RespondWithError(c, http.StatusBadRequest, "Transfer amount exceeds the cash balance")
		return
	}

	transfer := models.Transfer{
		UserID: userUUID,
		Amount: *input.Amount,
		Date:   date,
	}

	if err := config.DB.Create(&transfer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to register transfer")
		return
	}

	c.JSON(http.StatusCreated, transfer)
}

// GetTransfers lists all transfers, newest first
func GetTransfers(c *gin.Context) {
	userUUID, ok := currentUserID(c)
	if !ok {
		return
	}

	var transfers []models.Transfer
	if err := config.DB.Where("user_id = ?", userUUID).Order("date DESC").Find(&transfers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve transfers")
		return
	}

	c.JSON(http.StatusOK, transfers)
}
