package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/budgetcsv/internal/accounts"
	"github.com/cleared-dev/budgetcsv/internal/model"
)

func newAccountsCommand(opts *rootOptions) *cobra.Command {
	accountsCmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage the accounts statements import into",
	}
	accountsCmd.AddCommand(newAccountsListCommand(opts), newAccountsAddCommand(opts))
	return accountsCmd
}

func newAccountsListCommand(opts *rootOptions) *cobra.Command {
	var accountType string
	var all bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			svc, err := accounts.Load(ws.root)
			if err != nil {
				return err
			}

			var list []model.Account
			switch {
			case accountType != "":
				for _, a := range svc.ByType(model.AccountType(accountType)) {
					if all || a.Active {
						list = append(list, a)
					}
				}
			case all:
				list = svc.All()
			default:
				list = svc.Active()
			}

			out := cmd.OutOrStdout()
			if len(list) == 0 {
				fmt.Fprintln(out, "No accounts")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tTYPE\tACTIVE")
			for _, a := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%t\n", a.ID, a.Name, a.Type, a.Active)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&accountType, "type", "", "only accounts of this type (checking, savings, credit_card, investment)")
	cmd.Flags().BoolVar(&all, "all", false, "include inactive accounts")
	return cmd
}

func newAccountsAddCommand(opts *rootOptions) *cobra.Command {
	var name string
	var accountType string

	cmd := &cobra.Command{
		Use:   "add <id>",
		Short: "Add an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(cmd, opts)
			if err != nil {
				return err
			}
			svc, err := accounts.Load(ws.root)
			if err != nil {
				return err
			}

			acct := model.Account{ID: args[0], Name: name, Type: model.AccountType(accountType), Active: true}
			if !acct.Type.Valid() {
				return fmt.Errorf("unknown account type %q", accountType)
			}
			if acct.Name == "" {
				acct.Name = acct.ID
			}
			if err := svc.Add(acct); err != nil {
				return err
			}
			if err := svc.Save(ws.root); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added account %s\n", acct.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name (defaults to the ID)")
	cmd.Flags().StringVar(&accountType, "type", string(model.AccountTypeChecking), "account type")
	return cmd
}
