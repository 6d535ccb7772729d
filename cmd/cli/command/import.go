package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import [make]",
	Short: "Look up or import vPIC models of a make",
	Long: `Look up up to IMPORT_LIMIT models of a make in the vPIC catalog.

  carhubCLI import fiat              store the models, print the new cars
  carhubCLI import fiat --dry-run    only print what vPIC returns
  carhubCLI import --selected 1,4    admin: import every make of the given cars`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		selected, _ := cmd.Flags().GetInt64Slice("selected")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		out := cmd.OutOrStdout()

		if len(selected) > 0 {
			if len(args) > 0 {
				return errors.New("give either a make or --selected, not both")
			}
			c, err := GetAuthenticatedClient()
			if err != nil {
				return err
			}
			result, err := c.ImportForSelected(cmd.Context(), selected)
			if err != nil {
				return fmt.Errorf("admin import failed: %w", err)
			}
			success.Fprintf(out, "✓ Imported makes: %s\n", strings.Join(result.Makes, ", "))
			printCars(out, result.Created)
			return nil
		}

		if len(args) == 0 {
			return errors.New("a make is required")
		}

		if dryRun {
			vehicles, err := GetClient().ModelsForMake(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("lookup failed: %w", err)
			}
			printVehicles(out, vehicles)
			return nil
		}

		created, err := GetClient().ImportByMake(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("import failed: %w", err)
		}
		success.Fprintf(out, "✓ %d new cars\n", len(created))
		printCars(out, created)
		return nil
	},
}

func init() {
	importCmd.Flags().Bool("dry-run", false, "Only list the models, store nothing")
	importCmd.Flags().Int64Slice("selected", nil, "Car IDs whose makes to import (admin)")
}
