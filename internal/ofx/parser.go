// Package ofx converts OFX/QFX bank exports into the normalized statement
// shape consumed by the importer. All values stay in the bank's raw string
// form; parsing and scaling happen in the importer so its failure policy
// applies uniformly.
package ofx

import (
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/ledgersplit/ledgersplit/internal/model"
)

const dateLayout = "20060102"

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in OFX files.
func (p *Parser) preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// Fix mixed-case SEVERITY values (should be INFO, WARN, or ERROR)
	severityRegex := regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	content = severityRegex.ReplaceAllStringFunc(content, func(match string) string {
		return strings.ToUpper(match)
	})

	// Fix missing closing angle brackets in SGML-style OFX files
	tagFixRegex := regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
	content = tagFixRegex.ReplaceAllString(content, "$1>")

	return content
}

// ParseFile parses an OFX/QFX file into one normalized statement per
// account found in the file.
func (p *Parser) ParseFile(reader io.Reader) ([]model.BankStatement, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var statements []model.BankStatement
	var bankStmts, ccStmts int

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			bankStmts++
			statements = append(statements, p.convertStatement(
				string(stmt.BankAcctFrom.AcctID), stmt.BankTranList))
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			ccStmts++
			statements = append(statements, p.convertStatement(
				string(stmt.CCAcctFrom.AcctID), stmt.BankTranList))
		}
	}

	slog.Info("Parsed OFX file",
		"statements", len(statements),
		"bank_statements", bankStmts,
		"cc_statements", ccStmts)

	return statements, nil
}

// convertStatement maps one OFX transaction list to a normalized statement.
func (p *Parser) convertStatement(accountNumber string, list *ofxgo.TransactionList) model.BankStatement {
	stmt := model.BankStatement{
		AccountNumber: accountNumber,
	}
	if list == nil {
		return stmt
	}

	stmt.StartDate = list.DtStart.Time.Format(dateLayout)
	stmt.EndDate = list.DtEnd.Time.Format(dateLayout)

	for _, ofxTx := range list.Transactions {
		stmt.Transactions = append(stmt.Transactions, model.StatementLine{
			Type:   fmt.Sprintf("%v", ofxTx.TrnType),
			Date:   ofxTx.DtPosted.Time.Format(dateLayout),
			Amount: ofxTx.TrnAmt.String(),
			BankID: string(ofxTx.FiTID),
			Name:   string(ofxTx.Name),
			Memo:   string(ofxTx.Memo),
		})
	}

	return stmt
}
