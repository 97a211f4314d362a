package api

import (
	"errors"
	"net/http" // HTTP status codes

	"finapi/internal/domain"
	"finapi/internal/usecase"
	"finapi/internal/utils"

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/shopspring/decimal" // Decimal money amounts
	"github.com/sirupsen/logrus"    // Logging library
)

// CreateStatementRequest is the deposit/withdraw payload.
type CreateStatementRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// TransferRequest is the transfer payload; the recipient comes from the URL.
type TransferRequest struct {
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Description string          `json:"description" binding:"required"`
}

// balanceKey is the cache key for a user's balance response.
func balanceKey(userID string) string {
	return "balance:user:" + userID
}

// writeStatementError maps business-rule rejections to HTTP codes. Anything
// unrecognized is a storage fault and surfaces as 500.
func writeStatementError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrAmountMustBePositive):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Amount must be positive"})
	case errors.Is(err, domain.ErrInsufficientFunds):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Insufficient funds"})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, domain.ErrSenderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Sender not found"})
	case errors.Is(err, domain.ErrRecipientNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipient not found"})
	case errors.Is(err, domain.ErrStatementNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Statement not found"})
	default:
		logrus.WithField("error", err.Error()).Error("Statement operation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Operation failed"})
	}
}

// DepositHandler appends a deposit entry for the authenticated user.
func DepositHandler(uc *usecase.CreateStatement, cache *utils.Cache) gin.HandlerFunc {
	return createStatementHandler(uc, cache, domain.OperationDeposit)
}

// WithdrawHandler appends a withdraw entry for the authenticated user.
func WithdrawHandler(uc *usecase.CreateStatement, cache *utils.Cache) gin.HandlerFunc {
	return createStatementHandler(uc, cache, domain.OperationWithdraw)
}

func createStatementHandler(uc *usecase.CreateStatement, cache *utils.Cache, opType domain.OperationType) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req CreateStatementRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		stmt, err := uc.Execute(c.Request.Context(), usecase.CreateStatementInput{
			UserID:      userID,
			Type:        opType,
			Amount:      req.Amount,
			Description: req.Description,
		})
		if err != nil {
			writeStatementError(c, err)
			return
		}
		// The cached balance no longer reflects the ledger.
		_ = cache.Invalidate(c.Request.Context(), balanceKey(userID))
		c.JSON(http.StatusCreated, stmt)
	}
}

// BalanceHandler returns the derived balance plus the full statement list.
func BalanceHandler(uc *usecase.GetBalance, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		ctx := c.Request.Context()
		var cached struct {
			Balance   decimal.Decimal    `json:"balance"`
			Statement []domain.Statement `json:"statement"`
		}
		found, err := cache.GetJSON(ctx, balanceKey(userID), &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"balance": cached.Balance, "statement": cached.Statement, "cached": true})
			return
		}
		balance, err := uc.Execute(ctx, userID)
		if err != nil {
			writeStatementError(c, err)
			return
		}
		_ = cache.SetJSON(ctx, balanceKey(userID), balance)
		c.JSON(http.StatusOK, gin.H{"balance": balance.Balance, "statement": balance.Statement, "cached": false})
	}
}

// GetStatementHandler returns a single entry owned by the authenticated user.
func GetStatementHandler(uc *usecase.GetStatementOperation) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		stmt, err := uc.Execute(c.Request.Context(), userID, c.Param("statement_id"))
		if err != nil {
			writeStatementError(c, err)
			return
		}
		c.JSON(http.StatusOK, stmt)
	}
}

// TransferHandler moves funds from the authenticated user to the recipient
// named in the URL and returns the sender's debit entry.
func TransferHandler(uc *usecase.Transfer, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		senderID, ok := currentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		var req TransferRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		recipientID := c.Param("recipient_id")
		debit, err := uc.Execute(c.Request.Context(), usecase.TransferInput{
			SenderID:    senderID,
			RecipientID: recipientID,
			Amount:      req.Amount,
			Description: req.Description,
		})
		if err != nil {
			writeStatementError(c, err)
			return
		}
		// Both parties' cached balances are stale after the pair commit.
		_ = cache.Invalidate(c.Request.Context(), balanceKey(senderID), balanceKey(recipientID))
		c.JSON(http.StatusCreated, debit)
	}
}
