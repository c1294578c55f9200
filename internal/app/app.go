package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"paygate/internal/config"
	"paygate/internal/delivery"
	"paygate/internal/infra/nats"
	"paygate/internal/logger"
	"paygate/internal/service"

	"github.com/gin-gonic/gin"
	cors "github.com/rs/cors/wrapper/gin"
	"gorm.io/gorm"
)

type App struct {
	Config    *config.Config
	Db        *gorm.DB
	NatsInfra *nats.NatsInfra
	Log       logger.Logger
}

func (app *App) Start() {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(cors.Default())

	services := service.NewServices(app.NatsInfra.Ns, app.Db, app.Log, app.Config)

	// load the egress proxy list before the first delivery goes out
	if app.Config.ProxyPath != "" {
		services.WebhookSender.UpdateList(config.GetProxyList(app.Config.ProxyPath))
	}

	{
		h := delivery.InitHandler(services, app.Db, app.Config, app.NatsInfra, app.Log)

		h.InitAPI(r)
	}

	eChan := make(chan error)
	interrupt := make(chan os.Signal, 1)

	fmt.Println("paygate web is starting")

	go func() {
		err := r.Run(app.Config.Api.Ipv4)
		if err != nil {
			eChan <- fmt.Errorf("listen and serve: %w", err)
		}
	}()

	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-eChan:
		app.Log.TemplHTTPError("app fatal error", app.Config.Api.Ipv4, err)
		return
	case <-interrupt:
		return
	}
}
