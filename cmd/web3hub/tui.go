package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/nhle/web3hub/internal/alert"
	"github.com/nhle/web3hub/internal/app"
	"github.com/nhle/web3hub/internal/router"
)

func tuiRun(cmd *cobra.Command, _ []string) error {
	svc, err := setup(cmd.Context(), true)
	if err != nil {
		return wrapSetup(err)
	}
	defer svc.close()

	alerts := alert.NewChannel(16)
	poller := svc.poller(svc.alerter(alerts))

	root := app.New(app.Deps{
		Repo:     svc.repo,
		Prefs:    svc.prefs,
		Producer: svc.producer,
		Router:   router.New(svc.gate),
		Poller:   poller,
		Alerts:   alerts,
		Opener:   alert.BrowserOpener{},
		Wallet:   svc.walletConnector(),
		Logger:   svc.logger,
	})

	p := tea.NewProgram(root, tea.WithAltScreen())
	_, err = p.Run()
	poller.Stop()
	return err
}
