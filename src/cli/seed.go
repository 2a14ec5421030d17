package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/museum-catalog/museum-backend/src/seed"
)

var catalogPath string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the curator account and import a catalog workbook",
	Long: `seed creates the curator account named by CURATOR_USERNAME and
CURATOR_PASSWORD when it does not exist yet. With --catalog it also imports the
Periods, Cultures, Collections and Artifacts sheets of an XLSX workbook;
records that already exist are left untouched.`,
	RunE: runSeed,
}

func init() {
	seedCmd.Flags().StringVar(&catalogPath, "catalog", "", "XLSX workbook to import")
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, args []string) error {
	c, err := initContext()
	if err != nil {
		return err
	}
	defer c.Close()

	svc, err := c.Services()
	if err != nil {
		return err
	}

	if err := seed.Curator(cmd.Context(), svc.Users, c.Config.CuratorUsername, c.Config.CuratorPassword, c.Log); err != nil {
		return err
	}
	if catalogPath == "" {
		return nil
	}

	result, err := seed.Catalog(cmd.Context(), svc.Imports, catalogPath, c.Log)
	if result != nil {
		out := cmd.OutOrStdout()
		for _, sheet := range []string{"Periods", "Cultures", "Collections", "Artifacts"} {
			fmt.Fprintf(out, "%-12s created %d, existing %d\n", sheet, result.Created[sheet], result.Existing[sheet])
		}
	}
	return err
}
