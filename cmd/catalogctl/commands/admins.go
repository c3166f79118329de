package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/princeprakhar/device-catalog/internal/models"
)

var email string

var promoteCmd = &cobra.Command{
	Use:   "promote",
	Short: "Grant the admin role to a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRole(cmd, models.RoleAdmin)
	},
}

var demoteCmd = &cobra.Command{
	Use:   "demote",
	Short: "Revoke the admin role from a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRole(cmd, models.RoleUser)
	},
}

var listAdminsCmd = &cobra.Command{
	Use:   "list-admins",
	Short: "List users with the admin role",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		admins, err := a.users.ListAdmins(cmd.Context())
		if err != nil {
			return err
		}
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(admins)
		}
		if len(admins) == 0 {
			fmt.Println("No admins found")
			return nil
		}
		for _, u := range admins {
			fmt.Printf("%s\t%s\t%s\n", u.ID, u.Email, u.Name)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{promoteCmd, demoteCmd} {
		c.Flags().StringVar(&email, "email", "", "Email address of the user")
		_ = c.MarkFlagRequired("email")
		rootCmd.AddCommand(c)
	}
	rootCmd.AddCommand(listAdminsCmd)
}

func setRole(cmd *cobra.Command, role models.Role) error {
	a, err := openApp(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close()

	user, err := a.users.SetRoleByEmail(cmd.Context(), email, role)
	if err != nil {
		return err
	}
	fmt.Printf("%s (%s) is now %s\n", user.Email, user.ID, user.Role)
	return nil
}
