package main

import (
	"fmt"
	"time"

	"github.com/policlinic/clinic-backend-go/internal/domain/staff"
	"github.com/policlinic/clinic-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var staffID, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for a staff member",
		Long: `Mint a signed access token carrying the staff_id and role claims the API expects.

The token is signed with JWT_SECRET_KEY and expires after JWT_ACCESS_EXPIRATION_TIME.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			name := staff.RoleName(role)
			switch name {
			case staff.RoleDoctor, staff.RoleAdministrator, staff.RoleAssistant:
			default:
				return fmt.Errorf("unknown role %q: use doctor, administrator or assistant", role)
			}

			token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(staffID, name)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Println(token)
			fmt.Println(mutedStyle.Render("expires " + time.Unix(expiresAt, 0).UTC().Format(time.RFC3339)))
			return nil
		},
	}

	cmd.Flags().StringVar(&staffID, "staff", "", "Staff member ID (required)")
	cmd.Flags().StringVar(&role, "role", "", "Role claim: doctor, administrator or assistant (required)")
	_ = cmd.MarkFlagRequired("staff")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}
