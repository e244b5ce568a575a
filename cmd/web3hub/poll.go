package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func pollCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "poll",
		Short: "Run the notification poller without the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			svc, err := setup(ctx, false)
			if err != nil {
				return wrapSetup(err)
			}
			defer svc.close()

			poller := svc.poller(svc.alerter(logAlert(svc.logger)))
			poller.Start()
			defer poller.Stop()

			for {
				select {
				case <-ctx.Done():
					svc.logger.Info("shutting down poller")
					return nil
				case res := <-poller.Results():
					if res.Error != nil {
						svc.logger.Error("tick failed", zap.Error(res.Error))
					}
				}
			}
		},
	}
}
