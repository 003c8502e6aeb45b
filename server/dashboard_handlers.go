package server

import (
	"context"
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"
)

// DashboardMetrics is the four-count summary at the top of the dashboard.
type DashboardMetrics struct {
	PendingOrders    int `json:"pendingOrders"`
	DispatchedOrders int `json:"dispatchedOrders"`
	DeliveredOrders  int `json:"deliveredOrders"`
	LowQuantity      int `json:"lowQuantity"`
}

type lowQuantityResponse struct {
	LowQuantityCount int `json:"lowQuantityCount"`
}

// DashboardMetricsHandler fans the four metric reads out concurrently
// (GET /api/dashboard/metrics). Each count resolves independently: a
// failed metric is logged and reported as zero while the others still
// return, so the counts may reflect slightly different backend instants.
func (s *Server) DashboardMetricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, _ := SessionFromContext(r.Context())

		var metrics DashboardMetrics
		var wg sync.WaitGroup

		fetchCount := func(dst *int, path string) {
			defer wg.Done()
			var count int
			if err := s.backend.GetJSON(r.Context(), &count, path, sess.UserID); err != nil {
				log.Err(err).Str("path", path).Msg("Dashboard metric failed")
				return
			}
			*dst = count
		}

		wg.Add(4)
		go fetchCount(&metrics.PendingOrders, backendPendingOrders)
		go fetchCount(&metrics.DispatchedOrders, backendDispatchedOrder)
		go fetchCount(&metrics.DeliveredOrders, backendDeliveredOrders)
		go func() {
			defer wg.Done()
			metrics.LowQuantity = s.fetchLowQuantity(r.Context(), sess.UserID)
		}()
		wg.Wait()

		writeJSON(w, http.StatusOK, metrics)
	}
}

func (s *Server) fetchLowQuantity(ctx context.Context, adminID string) int {
	var resp lowQuantityResponse
	if err := s.backend.GetJSON(ctx, &resp, backendLowQuantity, adminID); err != nil {
		log.Err(err).Msg("Low quantity metric failed")
		return 0
	}
	return resp.LowQuantityCount
}
