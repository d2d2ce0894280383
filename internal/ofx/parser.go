// Package ofx parses OFX/QFX bank statements into transactions ready for
// classification.
package ofx

import (
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/aclindsa/ofxgo"
	"github.com/veldbooks/veldbooks/internal/model"
)

// Parser implements OFX/QFX file parsing.
type Parser struct{}

// NewParser creates a new OFX parser.
func NewParser() *Parser {
	return &Parser{}
}

// preprocessOFX fixes common formatting issues in bank-exported OFX files.
func (p *Parser) preprocessOFX(content string) string {
	// Trim any leading whitespace or blank lines before the header
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

// ParseFile parses an OFX/QFX statement and returns transactions for the
// given company.
func (p *Parser) ParseFile(_ context.Context, reader io.Reader, companyID string) ([]model.Transaction, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	processedContent := p.preprocessOFX(string(content))

	resp, err := ofxgo.ParseResponse(strings.NewReader(processedContent))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var transactions []model.Transaction

	for _, msg := range resp.Bank {
		if stmt, ok := msg.(*ofxgo.StatementResponse); ok {
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx, companyID))
			}
		}
	}

	for _, msg := range resp.CreditCard {
		if stmt, ok := msg.(*ofxgo.CCStatementResponse); ok {
			if stmt.BankTranList == nil {
				continue
			}
			for _, ofxTx := range stmt.BankTranList.Transactions {
				transactions = append(transactions, p.convertTransaction(ofxTx, companyID))
			}
		}
	}

	return transactions, nil
}

// incomeTrnTypes are the OFX transaction types that represent money in.
var incomeTrnTypes = map[string]bool{
	"CREDIT":    true,
	"DEP":       true,
	"DIRECTDEP": true,
	"INT":       true,
	"DIV":       true,
}

// convertTransaction converts an OFX transaction to our model. OFX uses
// negative amounts for debits; we keep the absolute value and carry the
// direction separately.
func (p *Parser) convertTransaction(ofxTx ofxgo.Transaction, companyID string) model.Transaction {
	amountFloat, _ := ofxTx.TrnAmt.Float64()

	direction := model.DirectionExpense
	if amountFloat > 0 || incomeTrnTypes[fmt.Sprintf("%v", ofxTx.TrnType)] {
		direction = model.DirectionIncome
	}

	amount := amountFloat
	if amount < 0 {
		amount = -amount
	}

	description := strings.TrimSpace(string(ofxTx.Name))
	if memo := strings.TrimSpace(string(ofxTx.Memo)); memo != "" && memo != description {
		if description == "" {
			description = memo
		} else {
			description = description + " " + memo
		}
	}

	txn := model.Transaction{
		ID:          string(ofxTx.FiTID),
		CompanyID:   companyID,
		Date:        ofxTx.DtPosted.Time,
		Description: description,
		Amount:      amount,
		Type:        direction,
		Source:      "ofx",
	}
	txn.Hash = txn.GenerateHash()
	return txn
}
