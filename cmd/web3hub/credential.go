package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/web3hub/internal/credential"
)

func credentialCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "credential",
		Short: "Manage secrets stored in the system keyring",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "set <key>",
			Short: "Store a secret read from stdin (keys: " + strings.Join(credential.Known, ", ") + ")",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				creds, err := credential.Open()
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Value for %s: ", args[0])
				value, err := bufio.NewReader(os.Stdin).ReadString('\n')
				if err != nil && value == "" {
					return fmt.Errorf("reading value: %w", err)
				}
				value = strings.TrimSpace(value)
				if value == "" {
					return fmt.Errorf("empty value for %s", args[0])
				}
				if err := creds.Set(args[0], value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Stored %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "delete <key>",
			Short: "Remove a stored secret",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				creds, err := credential.Open()
				if err != nil {
					return err
				}
				if err := creds.Delete(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:   "list",
			Short: "List stored secret names",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				creds, err := credential.Open()
				if err != nil {
					return err
				}
				keys, err := creds.Keys()
				if err != nil {
					return err
				}
				for _, k := range keys {
					fmt.Fprintln(cmd.OutOrStdout(), k)
				}
				return nil
			},
		},
	)
	return cmd
}
