// Copyright (c) 2026 Sabha. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/taibuivan/sabha/internal/platform/constants"
	"github.com/taibuivan/sabha/internal/platform/sec"
)

func newTokenCommand(env *environment) *cobra.Command {
	var (
		userID string
		email  string
		role   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Sign an access token for the console API",
		Long: `
Signs a token with JWT_PRIVATE_KEY_PATH. Useful for scripted uploads and for
smoke tests against a running server.
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userRole := sec.UserRole(role)
			if !userRole.Valid() {
				return fmt.Errorf("unknown role %q", role)
			}
			if env.cfg.JWTPrivKeyPath == "" {
				return errors.New("JWT_PRIVATE_KEY_PATH is not set")
			}

			tokens, err := sec.NewTokenService(env.cfg.JWTPrivKeyPath, env.cfg.JWTPubKeyPath, constants.AuthIssuer)
			if err != nil {
				return err
			}

			token, err := tokens.GenerateAccessToken(userID, email, userRole, constants.AccessTokenTTL)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&userID, "user", "", "Subject (console user id).")
	flags.StringVar(&email, "email", "", "E-mail claim.")
	flags.StringVar(&role, "role", string(sec.RoleUser), "Role (admin, vividhkshetra, user).")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
