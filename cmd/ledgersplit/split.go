package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ledgersplit/ledgersplit/internal/model"
	"github.com/ledgersplit/ledgersplit/internal/money"
	"github.com/ledgersplit/ledgersplit/internal/service"
	"github.com/spf13/cobra"
)

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Allocate a transaction's amount across users",
	}

	set := &cobra.Command{
		Use:   "set [transaction-id] [user:amount[:reviewed]...]",
		Short: "Replace the split set for a transaction",
		Long: `Replace the split set for a transaction. Each line is user:amount,
with amount in major units (e.g. 3:12.50), optionally suffixed with
:reviewed. The amounts must sum exactly to the transaction amount;
--distribute absorbs a small rounding remainder into the first line
before validation.

Examples:
  ledgersplit split set 42 1:10.00 2:2.50
  ledgersplit split set 42 1:4.17 2:4.17 3:4.17 --distribute`,
		Args: cobra.MinimumNArgs(2),
		RunE: runSplitSet,
	}
	set.Flags().Bool("distribute", false, "absorb a small rounding remainder into the first line")
	set.Flags().Int64("slack", money.DefaultSlack, "max remainder, in cents, --distribute may absorb")

	show := &cobra.Command{
		Use:   "show [transaction-id]",
		Short: "Show the current splits for a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runSplitShow,
	}

	del := &cobra.Command{
		Use:   "delete [transaction-id]",
		Short: "Delete all splits for a transaction",
		Args:  cobra.ExactArgs(1),
		RunE:  runSplitDelete,
	}

	totals := &cobra.Command{
		Use:   "totals",
		Short: "Per-user split totals over a date range",
		RunE:  runSplitTotals,
	}
	totals.Flags().String("start", "", "start date (YYYYMMDD, inclusive)")
	totals.Flags().String("end", "", "end date (YYYYMMDD, inclusive)")
	_ = totals.MarkFlagRequired("start")
	_ = totals.MarkFlagRequired("end")

	cmd.AddCommand(set)
	cmd.AddCommand(show)
	cmd.AddCommand(del)
	cmd.AddCommand(totals)

	return cmd
}

// parseSplitLine parses a user:amount[:reviewed] argument into a line with
// the amount in cents.
func parseSplitLine(arg string) (model.SplitLine, error) {
	parts := strings.Split(arg, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return model.SplitLine{}, fmt.Errorf("invalid split line %q, want user:amount[:reviewed]", arg)
	}

	userID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return model.SplitLine{}, fmt.Errorf("invalid user id in %q", arg)
	}

	amount, err := money.ParseCents(parts[1])
	if err != nil {
		return model.SplitLine{}, err
	}

	line := model.SplitLine{UserID: userID, Amount: amount}
	if len(parts) == 3 {
		if parts[2] != "reviewed" {
			return model.SplitLine{}, fmt.Errorf("invalid suffix in %q, only :reviewed is recognized", arg)
		}
		line.Reviewed = true
	}

	return line, nil
}

func runSplitSet(cmd *cobra.Command, args []string) error {
	distribute, _ := cmd.Flags().GetBool("distribute")
	slack, _ := cmd.Flags().GetInt64("slack")

	transactionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}

	lines := make([]model.SplitLine, 0, len(args)-1)
	for _, arg := range args[1:] {
		line, err := parseSplitLine(arg)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	allocator := service.NewSplitAllocator(store)

	if distribute {
		txn, err := store.GetTransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}

		shares := make([]int64, len(lines))
		for i, line := range lines {
			shares[i] = line.Amount
		}
		shares = money.Allocator{Slack: slack}.DistributeRemainder(txn.Amount, shares)
		for i := range lines {
			lines[i].Amount = shares[i]
		}
	}

	if err := allocator.SetSplits(ctx, transactionID, lines); err != nil {
		return err
	}

	fmt.Printf("split transaction %d across %d users\n", transactionID, len(lines))
	return nil
}

func runSplitShow(cmd *cobra.Command, args []string) error {
	transactionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	allocator := service.NewSplitAllocator(store)
	splits, err := allocator.GetSplits(ctx, transactionID)
	if err != nil {
		return err
	}

	if len(splits) == 0 {
		fmt.Printf("transaction %d is unsplit\n", transactionID)
		return nil
	}

	for _, split := range splits {
		reviewed := ""
		if split.Reviewed {
			reviewed = "  reviewed"
		}
		fmt.Printf("user %d  %12s%s\n", split.UserID, formatCents(split.Amount), reviewed)
	}

	return nil
}

func runSplitDelete(cmd *cobra.Command, args []string) error {
	transactionID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	allocator := service.NewSplitAllocator(store)
	return allocator.DeleteSplits(ctx, transactionID)
}

func runSplitTotals(cmd *cobra.Command, _ []string) error {
	startText, _ := cmd.Flags().GetString("start")
	endText, _ := cmd.Flags().GetString("end")

	start, err := service.ParseStatementDate(startText)
	if err != nil {
		return err
	}
	end, err := service.ParseStatementDate(endText)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	allocator := service.NewSplitAllocator(store)
	totals, err := allocator.TotalsByUser(ctx, start, end)
	if err != nil {
		return err
	}

	for _, total := range totals {
		fmt.Printf("user %d  %12s\n", total.UserID, formatCents(total.Total))
	}

	return nil
}
