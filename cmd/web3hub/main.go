package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/nhle/web3hub/internal/model"
)

const programName = "web3hub"

var (
	globalFlags = struct {
		debug bool
	}{}
	configFile string
)

func main() {
	// A missing .env is fine; values may come from the environment.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Web3 notification hub for the terminal",
		RunE:  tuiRun,
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")
	rootCmd.PersistentFlags().
		StringVar(&configFile, "config", model.DefaultConfigPath(), "path to config file")

	rootCmd.AddCommand(pollCommand())
	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(credentialCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
