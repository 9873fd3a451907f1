package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ledgersplit/ledgersplit/internal/model"
	"github.com/ledgersplit/ledgersplit/internal/service"
	"github.com/spf13/cobra"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import a normalized JSON bank statement",
		Long: `Import a bank statement that has already been normalized to the
ledgersplit statement shape:

  {
    "accountNumber": "12345678",
    "startDate": "20220301",
    "endDate": "20220331",
    "transactions": [
      {"transactionType": "FEE", "date": "20220331", "amount": "-12.50",
       "bankId": "202203310", "name": "Monthly A C Fee", "memo": "Bank Fee"}
    ]
  }

Re-importing the same statement is safe: lines whose bank id is already
known for the account are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: runImport,
	}

	cmd.Flags().String("as", "", "caller identity (email) recorded with the import")

	return cmd
}

func runImport(cmd *cobra.Command, args []string) error {
	caller, _ := cmd.Flags().GetString("as")

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read statement file: %w", err)
	}

	var stmt model.BankStatement
	if err := json.Unmarshal(data, &stmt); err != nil {
		return fmt.Errorf("failed to decode statement file: %w", err)
	}

	ctx := cmd.Context()
	if caller != "" {
		ctx = service.WithCaller(ctx, caller)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = store.Close() }()

	importer := service.NewImporter(store)
	if err := importer.Import(ctx, stmt); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	return nil
}
