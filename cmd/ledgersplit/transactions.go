package main

import (
	"fmt"
	"strconv"

	"github.com/ledgersplit/ledgersplit/internal/model"
	"github.com/ledgersplit/ledgersplit/internal/service"
	"github.com/spf13/cobra"
)

func transactionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "transactions",
		Aliases: []string{"txn"},
		Short:   "Browse imported transactions",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List transactions, most recent first",
		RunE:  runTransactionsList,
	}
	list.Flags().Int("page", 0, "page number (0-based)")
	list.Flags().Int("page-size", service.DefaultPageSize, "items per page")
	list.Flags().String("start", "", "start date (YYYYMMDD, inclusive)")
	list.Flags().String("end", "", "end date (YYYYMMDD, inclusive)")

	show := &cobra.Command{
		Use:   "show [id]",
		Short: "Show a single transaction and its splits",
		Args:  cobra.ExactArgs(1),
		RunE:  runTransactionsShow,
	}

	category := &cobra.Command{
		Use:   "set-category [id] [category-id]",
		Short: "Set or clear the category on a transaction",
		Long: `Set the category reference on a transaction. Pass "none" as the
category id to clear it.`,
		Args: cobra.ExactArgs(2),
		RunE: runTransactionsSetCategory,
	}

	cmd.AddCommand(list)
	cmd.AddCommand(show)
	cmd.AddCommand(category)

	return cmd
}

func runTransactionsList(cmd *cobra.Command, _ []string) error {
	page, _ := cmd.Flags().GetInt("page")
	pageSize, _ := cmd.Flags().GetInt("page-size")
	startText, _ := cmd.Flags().GetString("start")
	endText, _ := cmd.Flags().GetString("end")

	if (startText == "") != (endText == "") {
		return fmt.Errorf("--start and --end must be given together")
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	queries := service.NewTransactionQueries(store)

	var result model.Paged[model.Transaction]
	if startText != "" {
		start, err := service.ParseStatementDate(startText)
		if err != nil {
			return err
		}
		end, err := service.ParseStatementDate(endText)
		if err != nil {
			return err
		}
		result, err = queries.ListByDate(ctx, start, end, page, pageSize)
		if err != nil {
			return err
		}
	} else {
		result, err = queries.List(ctx, page, pageSize)
		if err != nil {
			return err
		}
	}

	for _, txn := range result.Items {
		fmt.Printf("%6d  %s  %12s  %s\n",
			txn.ID,
			txn.Date.Format("2006-01-02"),
			formatCents(txn.Amount),
			txn.Details)
	}
	fmt.Printf("page %d of %d (%d transactions)\n",
		result.Page, result.TotalPages, result.TotalItems)

	return nil
}

func runTransactionsShow(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	queries := service.NewTransactionQueries(store)
	txn, err := queries.Get(ctx, id)
	if err != nil {
		return err
	}

	fmt.Printf("id:       %d\n", txn.ID)
	fmt.Printf("date:     %s\n", txn.Date.Format("2006-01-02"))
	fmt.Printf("amount:   %s\n", formatCents(txn.Amount))
	fmt.Printf("details:  %s\n", txn.Details)
	fmt.Printf("bank id:  %s\n", txn.BankID)
	if txn.CategoryID != nil {
		fmt.Printf("category: %d\n", *txn.CategoryID)
	}

	allocator := service.NewSplitAllocator(store)
	splits, err := allocator.GetSplits(ctx, id)
	if err != nil {
		return err
	}
	for _, split := range splits {
		reviewed := " "
		if split.Reviewed {
			reviewed = "*"
		}
		fmt.Printf("split:    user %d  %12s %s\n", split.UserID, formatCents(split.Amount), reviewed)
	}

	return nil
}

func runTransactionsSetCategory(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}

	var categoryID *int64
	if args[1] != "none" {
		parsed, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid category id %q", args[1])
		}
		categoryID = &parsed
	}

	ctx := cmd.Context()
	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	queries := service.NewTransactionQueries(store)
	return queries.UpdateCategory(ctx, id, categoryID)
}
