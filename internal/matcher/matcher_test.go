package matcher

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldbooks/veldbooks/internal/model"
	"github.com/veldbooks/veldbooks/internal/rules"
)

func expenseTxn(id, description string) model.Transaction {
	return model.Transaction{
		ID:          id,
		CompanyID:   "acme",
		Date:        time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Description: description,
		Amount:      100,
		Type:        model.DirectionExpense,
	}
}

func incomeTxn(id, description string) model.Transaction {
	txn := expenseTxn(id, description)
	txn.Type = model.DirectionIncome
	return txn
}

func TestMatchTransactions_BankAppPaymentMatchesBankCharges(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "7", Name: "Bank Charges", Type: "Expense"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "FNB App Rct Pmt to Jane")}, chart)
	require.NoError(t, err)
	require.Len(t, results, 1)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "7", s.AccountID)
	assert.Equal(t, "Bank Charges", s.AccountName)
	assert.InDelta(t, 15.0, s.VATRate, 0.001)
	assert.Equal(t, rules.VATTypeStandard, s.VATType)
	assert.GreaterOrEqual(t, s.Confidence, 0.85)
}

func TestMatchTransactions_RentResolvesViaSynonyms(t *testing.T) {
	ctx := context.Background()
	// No account named "Rent" anywhere; resolution must fall through to the
	// synonym table ("premises").
	chart := []model.ChartAccount{
		{ID: "3", Name: "Premises Costs", Type: "Expense"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "Monthly office rent")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "3", s.AccountID)
	assert.Equal(t, "Premises Costs", s.AccountName)
	assert.InDelta(t, 0.90, s.Confidence, 0.001)
}

func TestMatchTransactions_IncomeMatchesSalesRevenue(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "9", Name: "Sales Revenue", Type: "Income"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{incomeTxn("t1", "Invoice payment received")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "9", s.AccountID)
	assert.InDelta(t, 0.85, s.Confidence, 0.001)
	assert.Contains(t, s.Reasoning, "sales revenue")
}

func TestMatchTransactions_NoMatchReturnsNilSuggestion(t *testing.T) {
	ctx := context.Background()
	// No recognizable tokens and no expense-like account to fall back to.
	chart := []model.ChartAccount{
		{ID: "1", Name: "Assets", Type: "Asset"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "asdkjasd")}, chart)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Nil(t, results[0].Suggestion)
	assert.Equal(t, "t1", results[0].Transaction.ID)
}

func TestMatchTransactions_HighestConfidenceRuleWins(t *testing.T) {
	ctx := context.Background()
	// "bank app fee" textually hits both the Bank Charges rule (0.95) and the
	// generic Fees rule (0.80). Neither account name contains a description
	// token, so the rule table decides; the higher static confidence must
	// win. Both rules reach their accounts only through synonym resolution
	// ("financial" for bank charges, "legal" for fees).
	chart := []model.ChartAccount{
		{ID: "2", Name: "Legal Advisory Costs", Type: "Expense"},
		{ID: "7", Name: "Financial Services", Type: "Expense"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "bank app fee")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "7", s.AccountID)
	assert.Equal(t, "Financial Services", s.AccountName)
	assert.InDelta(t, 0.95, s.Confidence, 0.001)

	// With no account the Bank Charges rule can resolve, the generic Fees
	// rule is the best remaining textual match.
	results, err = New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "bank app fee")},
		[]model.ChartAccount{{ID: "2", Name: "Legal Advisory Costs", Type: "Expense"}})
	require.NoError(t, err)

	s = results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "2", s.AccountID)
	assert.InDelta(t, 0.80, s.Confidence, 0.001)
}

func TestMatchTransactions_DirectMatchOutranksRules(t *testing.T) {
	ctx := context.Background()
	// "stationery" is both a rule pattern (Office Supplies, 0.90) and a
	// substring match against the company's own account name. The company's
	// naming must win, at the fixed direct-match confidence.
	chart := []model.ChartAccount{
		{ID: "5", Name: "Stationery On Hand", Type: "Expense"},
		{ID: "6", Name: "Office Supplies", Type: "Expense"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "stationery order")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "5", s.AccountID)
	assert.InDelta(t, 0.85, s.Confidence, 0.001)
	assert.Contains(t, s.Reasoning, "stationery")
}

func TestMatchTransactions_EmployeeCostsAreVATExempt(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "4", Name: "Employee Costs", Type: "Expense"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "Salaries March 2024")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "Employee Costs", s.AccountName)
	assert.InDelta(t, 0.0, s.VATRate, 0.001)
	assert.Equal(t, rules.VATTypeExempt, s.VATType)
}

func TestMatchTransactions_IncomeGenericFallback(t *testing.T) {
	ctx := context.Background()
	// Built-in income rule resolves only against revenue-like accounts; with
	// a description no rule matches, the income fallback still finds one.
	chart := []model.ChartAccount{
		{ID: "9", Name: "Fees Received", Type: "Income"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{incomeTxn("t1", "zzqx")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "9", s.AccountID)
	assert.InDelta(t, 0.75, s.Confidence, 0.001)
	assert.Equal(t, "Default income account - please review", s.Reasoning)
}

func TestMatchTransactions_ExpenseDefaultAccountFallback(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "1", Name: "Sundries", Type: "Expense"},
	}

	results, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "zzqx")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "1", s.AccountID)
	assert.InDelta(t, 0.50, s.Confidence, 0.001)
	assert.Equal(t, "Fallback to default expense account", s.Reasoning)
}

func TestMatchTransactions_OneResultPerInputInOrder(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "7", Name: "Bank Charges", Type: "Expense"},
		{ID: "9", Name: "Sales Revenue", Type: "Income"},
	}

	var transactions []model.Transaction
	for i := 0; i < 50; i++ {
		if i%2 == 0 {
			transactions = append(transactions, expenseTxn(fmt.Sprintf("t%d", i), "bank fee"))
		} else {
			transactions = append(transactions, incomeTxn(fmt.Sprintf("t%d", i), "customer deposit"))
		}
	}

	results, err := New().MatchTransactions(ctx, transactions, chart)
	require.NoError(t, err)
	require.Len(t, results, len(transactions))
	for i, result := range results {
		assert.Equal(t, transactions[i].ID, result.Transaction.ID)
	}
}

func TestMatchTransactions_WorkerPoolPreservesOrder(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "7", Name: "Bank Charges", Type: "Expense"},
		{ID: "9", Name: "Sales Revenue", Type: "Income"},
	}

	var transactions []model.Transaction
	for i := 0; i < 200; i++ {
		transactions = append(transactions, expenseTxn(fmt.Sprintf("t%d", i), "monthly account fee"))
	}

	sequential, err := New().MatchTransactions(ctx, transactions, chart)
	require.NoError(t, err)

	parallel, err := New(WithWorkers(8)).MatchTransactions(ctx, transactions, chart)
	require.NoError(t, err)

	require.Len(t, parallel, len(sequential))
	for i := range sequential {
		assert.Equal(t, sequential[i].Transaction.ID, parallel[i].Transaction.ID)
		assert.Equal(t, sequential[i].Suggestion, parallel[i].Suggestion)
	}
}

func TestMatchTransactions_Idempotent(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "3", Name: "Premises Costs", Type: "Expense"},
		{ID: "7", Name: "Bank Charges", Type: "Expense"},
	}
	transactions := []model.Transaction{
		expenseTxn("t1", "Monthly office rent"),
		expenseTxn("t2", "FNB App Rct Pmt to Jane"),
		expenseTxn("t3", "asdkjasd"),
	}

	m := New()
	first, err := m.MatchTransactions(ctx, transactions, chart)
	require.NoError(t, err)
	second, err := m.MatchTransactions(ctx, transactions, chart)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMatchTransactions_SuggestedAccountAlwaysInChart(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{
		{ID: "1", Name: "Bank Charges", Type: "Expense"},
		{ID: "2", Name: "Sales Revenue", Type: "Income"},
		{ID: "3", Name: "General Expenses", Type: "Expense"},
	}
	chartIDs := map[string]bool{"1": true, "2": true, "3": true}

	transactions := []model.Transaction{
		expenseTxn("t1", "bank fee"),
		expenseTxn("t2", "rent for office premises"),
		incomeTxn("t3", "payment received"),
		expenseTxn("t4", "card purchase pos 1234"),
	}

	results, err := New().MatchTransactions(ctx, transactions, chart)
	require.NoError(t, err)

	for _, result := range results {
		if result.Suggestion == nil {
			continue
		}
		assert.True(t, chartIDs[result.Suggestion.AccountID],
			"suggestion references account %q not in chart", result.Suggestion.AccountID)
		assert.GreaterOrEqual(t, result.Suggestion.Confidence, 0.0)
		assert.LessOrEqual(t, result.Suggestion.Confidence, 1.0)
	}
}

func TestMatchTransactions_ConfidenceTieKeepsTableOrder(t *testing.T) {
	ctx := context.Background()
	tied := []rules.Rule{
		{
			AccountName: "First Account",
			Patterns:    []string{"widget"},
			VATRate:     rules.StandardVATRate,
			VATType:     rules.VATTypeStandard,
			Confidence:  0.90,
			Reasoning:   "first rule",
		},
		{
			AccountName: "Second Account",
			Patterns:    []string{"widget"},
			VATRate:     rules.StandardVATRate,
			VATType:     rules.VATTypeStandard,
			Confidence:  0.90,
			Reasoning:   "second rule",
		},
	}
	chart := []model.ChartAccount{
		{ID: "1", Name: "First Account", Type: "Expense"},
		{ID: "2", Name: "Second Account", Type: "Expense"},
	}

	m := New(WithRules(tied, rules.IncomeRules()))
	results, err := m.MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "widget order")}, chart)
	require.NoError(t, err)

	s := results[0].Suggestion
	require.NotNil(t, s)
	assert.Equal(t, "First Account", s.AccountName)
}

func TestMatchTransactions_RejectsMalformedInput(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{{ID: "1", Name: "Bank Charges", Type: "Expense"}}

	tests := []struct {
		name         string
		wantErr      string
		transactions []model.Transaction
		chart        []model.ChartAccount
	}{
		{
			name:         "missing transaction ID",
			transactions: []model.Transaction{{Description: "bank fee", Type: model.DirectionExpense}},
			chart:        chart,
			wantErr:      "missing ID",
		},
		{
			name:         "unknown direction",
			transactions: []model.Transaction{{ID: "t1", Description: "bank fee", Type: "transfer"}},
			chart:        chart,
			wantErr:      "unknown direction",
		},
		{
			name:         "account without name",
			transactions: []model.Transaction{expenseTxn("t1", "bank fee")},
			chart:        []model.ChartAccount{{ID: "1"}},
			wantErr:      "missing name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New().MatchTransactions(ctx, tt.transactions, tt.chart)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMatchTransactions_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	chart := []model.ChartAccount{{ID: "1", Name: "Bank Charges", Type: "Expense"}}
	_, err := New().MatchTransactions(ctx,
		[]model.Transaction{expenseTxn("t1", "bank fee")}, chart)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMatchTransactions_EmptyBatch(t *testing.T) {
	ctx := context.Background()
	chart := []model.ChartAccount{{ID: "1", Name: "Bank Charges", Type: "Expense"}}

	results, err := New().MatchTransactions(ctx, nil, chart)
	require.NoError(t, err)
	assert.Empty(t, results)
}
