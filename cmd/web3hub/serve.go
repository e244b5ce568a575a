package main

import (
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/web3hub/internal/httpapi"
)

func serveCommand() *cobra.Command {
	var listen string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API and run the poller",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := setup(ctx, false)
			if err != nil {
				return wrapSetup(err)
			}
			defer svc.close()

			if !globalFlags.debug {
				gin.SetMode(gin.ReleaseMode)
			}

			poller := svc.poller(svc.alerter(logAlert(svc.logger)))
			poller.Start()
			defer poller.Stop()

			go func() {
				for {
					select {
					case <-ctx.Done():
						return
					case res := <-poller.Results():
						if res.Error != nil {
							svc.logger.Error("tick failed", zap.Error(res.Error))
						}
					}
				}
			}()

			engine := httpapi.NewRouter(httpapi.Deps{
				Repo:     svc.repo,
				Prefs:    svc.prefs,
				Producer: svc.producer,
				Gate:     svc.gate,
				Clicker:  poller,
				Logger:   svc.logger,
			})

			addr := svc.cfg.HTTP.Listen
			if listen != "" {
				addr = listen
			}
			return httpapi.Serve(ctx, addr, engine, svc.logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "listen address, overrides http.listen")
	return cmd
}
