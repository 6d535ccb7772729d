package command

import (
	"fmt"
	"strconv"

	"carhub/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

// carsCmd represents the cars command for car related subcommands
var carsCmd = &cobra.Command{
	Use:   "cars",
	Short: "List, show, add and delete cars",
}

var listCarsCmd = &cobra.Command{
	Use:   "list",
	Short: "List all cars",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cars, err := GetClient().ListCars(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list cars: %w", err)
		}
		printCars(cmd.OutOrStdout(), cars)
		return nil
	},
}

var getCarCmd = &cobra.Command{
	Use:   "get [car-id]",
	Short: "Show one car with its rating statistics",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCarID(args[0])
		if err != nil {
			return err
		}
		car, err := GetClient().GetCar(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("failed to get car: %w", err)
		}
		printCar(cmd.OutOrStdout(), car)
		return nil
	},
}

var createCarCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a car after checking it against vPIC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.CreateCarDTO
		req.Make, _ = cmd.Flags().GetString("make")
		req.Model, _ = cmd.Flags().GetString("model")

		car, err := GetClient().CreateCar(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("failed to create car: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Car created: %s %s (ID %d)\n", car.Make, car.Model, car.ID)
		return nil
	},
}

var deleteCarCmd = &cobra.Command{
	Use:   "delete [car-id]",
	Short: "Delete a car and its ratings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseCarID(args[0])
		if err != nil {
			return err
		}
		if err := GetClient().DeleteCar(cmd.Context(), id); err != nil {
			return fmt.Errorf("failed to delete car: %w", err)
		}
		success.Fprintf(cmd.OutOrStdout(), "✓ Car %d deleted\n", id)
		return nil
	},
}

func parseCarID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid car ID: %q", s)
	}
	return id, nil
}

func init() {
	carsCmd.AddCommand(listCarsCmd)
	carsCmd.AddCommand(getCarCmd)
	carsCmd.AddCommand(createCarCmd)
	carsCmd.AddCommand(deleteCarCmd)

	createCarCmd.Flags().StringP("make", "m", "", "Car make, e.g. Fiat")
	createCarCmd.Flags().StringP("model", "o", "", "Car model exactly as vPIC spells it, e.g. 500")
	createCarCmd.MarkFlagRequired("make")
	createCarCmd.MarkFlagRequired("model")
}
