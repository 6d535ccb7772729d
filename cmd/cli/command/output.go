package command

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"carhub/internal/microservices/http-api/dto"

	"github.com/fatih/color"
)

var (
	success = color.New(color.FgGreen)
	header  = color.New(color.Bold)
	muted   = color.New(color.FgHiBlack)
)

func printCars(w io.Writer, cars []dto.CarResponse) {
	if len(cars) == 0 {
		muted.Fprintln(w, "No cars found.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header.Fprintln(tw, "ID\tMAKE\tMODEL\tAVG\tRATINGS")
	for _, c := range cars {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%d\n", c.ID, c.Make, c.Model, c.AvgRating, c.RatesNumber)
	}
	tw.Flush()
}

func printCar(w io.Writer, c *dto.CarResponse) {
	fmt.Fprintf(w, "ID:       %d\n", c.ID)
	fmt.Fprintf(w, "Make:     %s\n", c.Make)
	fmt.Fprintf(w, "Model:    %s\n", c.Model)
	fmt.Fprintf(w, "Average:  %s\n", stars(c.AvgRating))
	fmt.Fprintf(w, "Ratings:  %d\n", c.RatesNumber)
}

func printVehicles(w io.Writer, vehicles []dto.VehicleResponse) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	header.Fprintln(tw, "MAKE\tMODEL")
	for _, v := range vehicles {
		fmt.Fprintf(tw, "%s\t%s\n", v.Make, v.Model)
	}
	tw.Flush()
}

// stars renders an average like 4.7 as "★★★★★ 4.7"
func stars(avg float64) string {
	if avg <= 0 {
		return "no ratings"
	}
	full := int(avg + 0.5)
	return strings.Repeat("★", full) + strings.Repeat("☆", 5-full) + fmt.Sprintf(" %.1f", avg)
}
