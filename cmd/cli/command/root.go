package command

// root.go defines the root command for the carhubCLI application.
// set up the global flags here.

import (
	"fmt"
	"os"

	"carhub/cmd/cli/authentication"
	"carhub/cmd/cli/command/client"

	"github.com/spf13/cobra"
)

var (
	apiURL string // Global flag for API server URL
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "carhubCLI",
	Short: "carhubCLI - CarHub Command Line Interface",
	Long: `carhubCLI talks to the CarHub API. It can:
- List, add and delete cars (new cars are checked against the NHTSA vPIC catalog)
- Rate cars from 1 to 5 and show the most popular ones
- Look up or import every model of a make

Use "carhubCLI command --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err) // Print error to standard error
		os.Exit(1)
	}
}

func init() {
	defaultAPI := os.Getenv("CARHUB_API")
	if defaultAPI == "" {
		defaultAPI = "http://localhost:8080"
	}
	// Global persistent flags = available to all subcommands
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", defaultAPI, "API server URL")

	rootCmd.AddCommand(authCmd)
	rootCmd.AddCommand(carsCmd)
	rootCmd.AddCommand(rateCmd)
	rootCmd.AddCommand(popularCmd)
	rootCmd.AddCommand(importCmd)
}

// GetClient returns an anonymous client for the public endpoints
func GetClient() *client.HTTPClient {
	return client.NewHTTPClient(apiURL)
}

// GetAuthenticatedClient returns a client carrying the stored admin token
func GetAuthenticatedClient() (*client.HTTPClient, error) {
	creds, err := authentication.GetTokens()
	if err != nil {
		return nil, err
	}
	c := client.NewHTTPClient(apiURL)
	c.SetToken(creds.AccessToken)
	return c, nil
}
