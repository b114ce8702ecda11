package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/pos_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/pos_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/pos_inventory_app/internal/dto"
	"github.com/SscSPs/pos_inventory_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ledgerHandler handles HTTP requests for ledger accounts, entries and payments.
type ledgerHandler struct {
	ledgerService portssvc.LedgerSvcFacade
}

func newLedgerHandler(ls portssvc.LedgerSvcFacade) *ledgerHandler {
	return &ledgerHandler{ledgerService: ls}
}

// RegisterLedgerRoutes registers the /ledger routes.
func RegisterLedgerRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade) {
	registerValidators()
	h := newLedgerHandler(ledgerService)

	ledger := rg.Group("/ledger")
	{
		ledger.GET("/cash", h.getCashLedger)
		ledger.GET("/accounts", h.listAccounts)
		ledger.POST("/accounts", h.createAccount)
		ledger.DELETE("/accounts/:accountID", h.deleteAccount)
		ledger.GET("/accounts/:accountID/entries", h.getAccountEntries)
		ledger.POST("/entries", h.createEntry)
		ledger.POST("/payments/customer", h.recordCustomerPayment)
		ledger.POST("/payments/supplier", h.recordSupplierPayment)
	}
}

// getCashLedger godoc
// @Summary Get the cash ledger
// @Description Lists cash account entries with running balances inside an optional date window
// @Tags ledger
// @Produce  json
// @Param   startDate query string false "Start date (YYYY-MM-DD)"
// @Param   endDate query string false "End date (YYYY-MM-DD), inclusive"
// @Success 200 {object} dto.CashLedgerResponse
// @Failure 400 {object} map[string]string "Invalid date"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to load cash ledger"
// @Security BearerAuth
// @Router /ledger/cash [get]
func (h *ledgerHandler) getCashLedger(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	start, err := queryDate(c, "startDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid startDate, expected YYYY-MM-DD"})
		return
	}
	end, err := queryDate(c, "endDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid endDate, expected YYYY-MM-DD"})
		return
	}

	ledger, err := h.ledgerService.GetCashLedger(c.Request.Context(), dto.CashLedgerParams{StartDate: start, EndDate: end})
	if err != nil {
		handleServiceError(c, logger, err, "Failed to load cash ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToCashLedgerResponse(ledger))
}

// listAccounts godoc
// @Summary List ledger accounts
// @Description Lists live accounts of one type ordered by name, each with its balance
// @Tags ledger
// @Produce  json
// @Param   type query string true "Account type" Enums(CASH, CUSTOMER, SUPPLIER)
// @Success 200 {array} dto.LedgerAccountResponse
// @Failure 400 {object} map[string]string "Invalid type"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list accounts"
// @Security BearerAuth
// @Router /ledger/accounts [get]
func (h *ledgerHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountType := domain.AccountType(strings.ToUpper(c.Query("type")))

	accounts, err := h.ledgerService.ListAccounts(c.Request.Context(), accountType)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to list accounts")
		return
	}

	logger.Debug("Accounts listed", slog.String("type", string(accountType)), slog.Int("count", len(accounts)))
	c.JSON(http.StatusOK, dto.ToListLedgerAccountResponse(accounts))
}

// createAccount godoc
// @Summary Create a customer or supplier account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   account body dto.CreateLedgerAccountRequest true "Account details"
// @Success 201 {object} dto.LedgerAccountResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 409 {object} map[string]string "Account name already in use"
// @Failure 500 {object} map[string]string "Failed to create account"
// @Security BearerAuth
// @Router /ledger/accounts [post]
func (h *ledgerHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	acc, err := h.ledgerService.CreateAccount(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to create account")
		return
	}

	logger.Info("Ledger account created", slog.String("account_id", acc.AccountID), slog.String("type", string(acc.Type)))
	c.JSON(http.StatusCreated, dto.ToLedgerAccountResponse(acc))
}

// deleteAccount godoc
// @Summary Delete a customer or supplier account
// @Description Soft deletes the account. Its entries are kept.
// @Tags ledger
// @Param   accountID path string true "Account ID"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Cash account cannot be deleted"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to delete account"
// @Security BearerAuth
// @Router /ledger/accounts/{accountID} [delete]
func (h *ledgerHandler) deleteAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("accountID")

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	if err := h.ledgerService.DeleteAccount(c.Request.Context(), accountID, userID); err != nil {
		handleServiceError(c, logger, err, "Failed to delete account")
		return
	}

	logger.Info("Ledger account deleted", slog.String("account_id", accountID))
	c.Status(http.StatusNoContent)
}

// getAccountEntries godoc
// @Summary Get an account ledger
// @Description Returns the account with its chronological entries and running balances
// @Tags ledger
// @Produce  json
// @Param   accountID path string true "Account ID"
// @Success 200 {object} dto.AccountLedgerResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to load account ledger"
// @Security BearerAuth
// @Router /ledger/accounts/{accountID}/entries [get]
func (h *ledgerHandler) getAccountEntries(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	ledger, err := h.ledgerService.GetAccountLedger(c.Request.Context(), c.Param("accountID"))
	if err != nil {
		handleServiceError(c, logger, err, "Failed to load account ledger")
		return
	}

	c.JSON(http.StatusOK, dto.ToAccountLedgerResponse(ledger))
}

// createEntry godoc
// @Summary Post a manual ledger entry
// @Description Appends one debit or credit to an account
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   entry body dto.CreateLedgerEntryRequest true "Entry details"
// @Success 201 {object} dto.LedgerEntryResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 500 {object} map[string]string "Failed to post entry"
// @Security BearerAuth
// @Router /ledger/entries [post]
func (h *ledgerHandler) createEntry(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateLedgerEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateLedgerEntry", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	entry, err := h.ledgerService.PostManualEntry(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to post entry")
		return
	}

	logger.Info("Manual ledger entry posted", slog.String("entry_id", entry.EntryID), slog.String("account_id", entry.AccountID))
	c.JSON(http.StatusCreated, dto.ToLedgerEntryResponse(entry))
}

// recordCustomerPayment godoc
// @Summary Record a customer payment
// @Description Credits the customer and debits cash atomically
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Customer account not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Failure 503 {object} map[string]string "Retry later"
// @Security BearerAuth
// @Router /ledger/payments/customer [post]
func (h *ledgerHandler) recordCustomerPayment(c *gin.Context) {
	h.recordPayment(c, h.ledgerService.RecordCustomerPayment)
}

// recordSupplierPayment godoc
// @Summary Record a supplier payment
// @Description Debits the supplier and credits cash atomically
// @Tags ledger
// @Accept  json
// @Produce  json
// @Param   payment body dto.RecordPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "Supplier account not found"
// @Failure 500 {object} map[string]string "Failed to record payment"
// @Failure 503 {object} map[string]string "Retry later"
// @Security BearerAuth
// @Router /ledger/payments/supplier [post]
func (h *ledgerHandler) recordSupplierPayment(c *gin.Context) {
	h.recordPayment(c, h.ledgerService.RecordSupplierPayment)
}

type paymentFunc func(ctx context.Context, req dto.RecordPaymentRequest, userID string) (*domain.PaymentResult, error)

func (h *ledgerHandler) recordPayment(c *gin.Context, record paymentFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for RecordPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := requireUserID(c, logger)
	if !ok {
		return
	}

	result, err := record(c.Request.Context(), req, userID)
	if err != nil {
		handleServiceError(c, logger, err, "Failed to record payment")
		return
	}

	logger.Info("Payment recorded", slog.String("account_id", result.Account.AccountID), slog.String("amount", result.Amount.String()))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(result))
}
