// TRANSACTION INGRESS ROUTES

package v1

import (
	"errors"
	"net/http"

	"paygate/internal/domain"
	"paygate/internal/logger"

	"github.com/gin-gonic/gin"
)

func (h *Handler) solanaWebhook(c *gin.Context) {
	var txs []domain.TxNotification

	if err := c.ShouldBindJSON(&txs); err != nil {
		h.log.Debug("should bind: " + err.Error())
		responseErr(c, http.StatusBadRequest, domain.ErrMsgBadRequest, "")
		return
	}

	if len(txs) == 0 {
		responseOK(c, domain.ErrMsgOK)
		return
	}

	if err := h.services.Reconciler.ProcessBatch(txs); err != nil {
		errid := logger.GenErrorId()

		// only a lost fan-out surfaces here; the indexer retries the batch
		// and the idempotency gate absorbs the duplicates
		if errors.Is(err, domain.ErrEventReload) {
			h.log.Error("batch aborted: "+err.Error(), logger.LS_RECONCILE, false, "error_id", errid)
		} else {
			h.log.Error("batch failed: "+err.Error(), logger.LS_RECONCILE, false, "error_id", errid)
		}

		responseErr(c, http.StatusInternalServerError, domain.ErrMsgInternalServerError, errid)
		return
	}

	responseOK(c, domain.ErrMsgOK)
}

func (h *Handler) initIngressRoutes(g *gin.RouterGroup) {
	g.POST("/webhook/solana", h.indexerAuthMiddleware(), h.solanaWebhook)
}
