package command

import (
	"fmt"
	"time"

	"carhub/cmd/cli/authentication"
	"carhub/internal/microservices/http-api/dto"

	"github.com/spf13/cobra"
)

// authCmd represents the auth command for admin authentication subcommands
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Admin authentication commands",
	Long:  `Log in as the CarHub admin. The access token is kept in the OS keyring.`,
}

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Login as admin",
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.LoginRequest
		req.Username, _ = cmd.Flags().GetString("username")
		req.Password, _ = cmd.Flags().GetString("password")

		response, err := GetClient().Login(cmd.Context(), &req)
		if err != nil {
			return fmt.Errorf("login process failed: %w", err)
		}

		creds := &authentication.StoredCredentials{
			AccessToken: response.AccessToken,
			Username:    req.Username,
			ExpiresAt:   time.Now().Add(time.Duration(response.ExpiresIn) * time.Second).Unix(),
		}
		if err := authentication.StoreTokens(creds); err != nil {
			return fmt.Errorf("could not store token: %w", err)
		}

		success.Fprintln(cmd.OutOrStdout(), "✓ Successfully logged in!")
		return nil
	},
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored admin token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := authentication.DeleteTokens(); err != nil {
			return err
		}
		success.Fprintln(cmd.OutOrStdout(), "✓ Successfully logged out.")
		return nil
	},
}

// init function to add auth commands to root command
func init() {
	authCmd.AddCommand(loginCmd)
	authCmd.AddCommand(logoutCmd)

	loginCmd.Flags().StringP("username", "u", "", "Admin username")
	loginCmd.Flags().StringP("password", "p", "", "Admin password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")
}
