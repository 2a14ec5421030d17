package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var curatorPassword string

var curatorCmd = &cobra.Command{
	Use:   "curator",
	Short: "Manage curator accounts",
}

var curatorCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a curator account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(curatorPassword) < 8 {
			return errors.New("--password must be at least 8 characters")
		}

		c, err := initContext()
		if err != nil {
			return err
		}
		defer c.Close()

		svc, err := c.Services()
		if err != nil {
			return err
		}
		user, err := svc.Users.CreateUser(cmd.Context(), args[0], curatorPassword)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Curator %q created (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	curatorCreateCmd.Flags().StringVar(&curatorPassword, "password", "", "account password")
	_ = curatorCreateCmd.MarkFlagRequired("password")
	curatorCmd.AddCommand(curatorCreateCmd)
	rootCmd.AddCommand(curatorCmd)
}
