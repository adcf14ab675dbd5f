package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Dee1911/Aspire.can/internal/app"
	"github.com/Dee1911/Aspire.can/internal/services"
)

var tokenUser string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint a bearer token for a user id (development)",
	Long: `Mint a signed bearer token with JWT_SECRET_KEY and JWT_ISSUER.

The token is printed on stdout so it can be used directly:

  curl -H "Authorization: Bearer $(aspire token --user alice)" localhost:8080/api/profile`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := quietLogger()
		if err != nil {
			return err
		}
		cfg, err := app.LoadConfig(log)
		if err != nil {
			return err
		}
		auth, err := services.NewAuthService(log, cfg.JWTSecretKey, cfg.JWTIssuer, cfg.AccessTokenTTL)
		if err != nil {
			return err
		}
		tok, err := auth.IssueToken(tokenUser)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenUser, "user", "", "User id placed in the sub claim")
	_ = tokenCmd.MarkFlagRequired("user")
}
