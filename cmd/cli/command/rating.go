package command

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var rateCmd = &cobra.Command{
	Use:   "rate [car-id] [rating]",
	Short: "Rate a car from 1 to 5",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		carID, err := parseCarID(args[0])
		if err != nil {
			return err
		}
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid rating: %q", args[1])
		}

		// the API validates the range
		result, err := GetClient().Rate(cmd.Context(), carID, rating)
		if err != nil {
			return fmt.Errorf("failed to rate car: %w", err)
		}

		success.Fprintln(cmd.OutOrStdout(), "✓ Rating submitted successfully!")
		fmt.Fprintf(cmd.OutOrStdout(), "Car ID: %d\n", result.CarID)
		fmt.Fprintf(cmd.OutOrStdout(), "Your Rating: %d/5\n", result.Rating)
		return nil
	},
}

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List cars, most rated first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cars, err := GetClient().Popular(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list popular cars: %w", err)
		}

		limit, _ := cmd.Flags().GetInt("top")
		if limit > 0 && len(cars) > limit {
			cars = cars[:limit]
		}
		printCars(cmd.OutOrStdout(), cars)
		return nil
	},
}

func init() {
	popularCmd.Flags().Int("top", 0, "Only show the first N cars (0 = all)")
}
