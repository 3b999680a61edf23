package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage back-office users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List admin users",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

var usersInviteCmd = &cobra.Command{
	Use:   "invite <email>",
	Short: "Invite an admin; they receive a link to set their password",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersInvite,
}

var usersDeleteCmd = &cobra.Command{
	Use:   "delete <user-id>",
	Short: "Delete an admin user",
	Long:  `Delete an admin user. The last remaining admin cannot be deleted.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersDelete,
}

func init() {
	usersCmd.AddCommand(usersListCmd)
	usersCmd.AddCommand(usersInviteCmd)
	usersCmd.AddCommand(usersDeleteCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	users, err := client().Users(ctx)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(users))
	for _, u := range users {
		verified := "no"
		if u.EmailVerified {
			verified = "yes"
		}
		lastLogin := "never"
		if u.LastLogin != nil {
			lastLogin = u.LastLogin.Format("2006-01-02 15:04")
		}
		rows = append(rows, []string{u.UserID, u.Email, u.Name, verified, lastLogin})
	}
	printTable(cmd.OutOrStdout(), []string{"User ID", "Email", "Name", "Verified", "Last login"}, rows)
	return nil
}

func runUsersInvite(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	res, err := client().InviteUser(ctx, args[0])
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "invited %s (%s)\n", res.User.Email, res.User.UserID)
	printWarning(out, res.EmailWarning)
	return nil
}

func runUsersDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	if err := client().DeleteUser(ctx, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
