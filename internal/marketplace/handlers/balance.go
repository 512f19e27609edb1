package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Mateiul123/Blockchainworkapp/internal/marketplace/metrics"
)

func (h *Handler) GetPendingBalance(c *gin.Context) {
	account, ok := parseAddress(c, "address", c.Param("address"))
	if !ok {
		return
	}
	balance := h.ledger.GetPendingBalance(account)
	c.JSON(http.StatusOK, gin.H{"account": account.Hex(), "balance": balance.String()})
}

type WithdrawRequest struct {
	Account string `json:"account" binding:"required"`
}

// Withdraw zeroes the pending balance and returns the amount. The
// external value transfer is performed by the caller's payment
// collaborator after this call returns; the ledger's involvement ends
// here.
func (h *Handler) Withdraw(c *gin.Context) {
	h.logger.Debugf("POST [Withdraw]")
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Errorf("Error decoding request body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
			"code":  "INVALID_REQUEST",
		})
		return
	}
	account, ok := parseAddress(c, "account", req.Account)
	if !ok {
		return
	}

	track := metrics.TrackLedgerOperation("withdraw")
	amount, err := h.ledger.Withdraw(account)
	track(err)
	if err != nil {
		h.logger.Errorf("Error withdrawing for %s: %v", account.Hex(), err)
		h.respondLedgerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account.Hex(), "amount": amount.String()})
}
