package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/SlpAus/reaction-records-backend/internal/platform/serializer"
	"github.com/SlpAus/reaction-records-backend/internal/user"
	"github.com/spf13/cobra"
)

// errValidation 表示输入未通过校验，具体错误已经打印
var errValidation = errors.New("validation failed")

func newCreateUserCmd() *cobra.Command {
	var (
		username, password, email string
		firstName, lastName       string
		staff, superuser          bool
	)

	cmd := &cobra.Command{
		Use:   "createuser",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			data := serializer.Data{
				"username":     username,
				"password":     password,
				"email":        email,
				"first_name":   firstName,
				"last_name":    lastName,
				"is_staff":     staff,
				"is_superuser": superuser,
			}
			newUser, errs, err := user.Create(cmd.Context(), data)
			if err != nil {
				return err
			}
			if !errs.Empty() {
				_ = printJSON(cmd.ErrOrStderr(), errs)
				return errValidation
			}
			return printJSON(cmd.OutOrStdout(), user.ToResponse(*newUser))
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "Username (required)")
	cmd.Flags().StringVar(&password, "password", "", "Password (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&firstName, "first-name", "", "First name")
	cmd.Flags().StringVar(&lastName, "last-name", "", "Last name")
	cmd.Flags().BoolVar(&staff, "staff", false, "Mark the user as staff")
	cmd.Flags().BoolVar(&superuser, "superuser", false, "Mark the user as superuser")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newDeleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deleteuser <id>",
		Short: "Delete a user and all of their games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid user id %q", args[0])
			}
			if err := user.Delete(cmd.Context(), uint(id)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted user %d\n", id)
			return nil
		},
	}
}
