package app

import (
	"github.com/gin-gonic/gin"
	"github.com/guttosm/pricemachine/internal/api"
	"github.com/guttosm/pricemachine/internal/logger"
	"github.com/guttosm/pricemachine/internal/service"
)

// InitializeApp builds the HTTP router over an already ingested aggregate.
//
// Responsibilities:
//   - Creates the HTTP handler layer around svc.
//   - Configures the Gin router with all API routes.
//   - Registers health and readiness probes; readiness includes the report
//     sink ping when the sink is enabled.
//
// Returns:
//   - *gin.Engine: the configured Gin HTTP router.
func InitializeApp(svc service.PriceService, sink *ReportSink) *gin.Engine {
	handler := api.NewHandler(svc)
	router := api.NewRouter(handler)

	var ping func() error
	if sink != nil {
		ping = sink.Ping
	}
	api.NewHealthHandler(ping).Register(router)

	logger.L().Info().Int("records", svc.Len()).Bool("postgres_sink", sink != nil && sink.Repo != nil).Msg("api initialized")

	return router
}
