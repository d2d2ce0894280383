package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veldbooks/veldbooks/internal/model"
)

// Sample OFX data for testing.
const sampleBankOFX = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20240315120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>ZAR
<BANKACCTFROM>
<BANKID>250655
<ACCTID>62000000001
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20240301120000[0:GMT]
<DTEND>20240331120000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240305120000[0:GMT]
<TRNAMT>-185.50
<FITID>2024030501
<NAME>FNB APP RCT PMT TO JANE
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20240310120000[0:GMT]
<TRNAMT>-8500.00
<FITID>2024031001
<NAME>MONTHLY OFFICE RENT
<MEMO>MARCH PREMISES
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20240312120000[0:GMT]
<TRNAMT>12000.00
<FITID>2024031201
<NAME>INVOICE PAYMENT RECEIVED
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>35000.00
<DTASOF>20240331120000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

func TestParseFile(t *testing.T) {
	parser := NewParser()

	transactions, err := parser.ParseFile(context.Background(), strings.NewReader(sampleBankOFX), "acme")
	require.NoError(t, err)
	require.Len(t, transactions, 3)

	first := transactions[0]
	assert.Equal(t, "2024030501", first.ID)
	assert.Equal(t, "acme", first.CompanyID)
	assert.Equal(t, "FNB APP RCT PMT TO JANE", first.Description)
	assert.InDelta(t, 185.50, first.Amount, 0.001)
	assert.Equal(t, model.DirectionExpense, first.Type)
	assert.Equal(t, "ofx", first.Source)
	assert.NotEmpty(t, first.Hash)

	// Memo is folded into the description when it adds information.
	second := transactions[1]
	assert.Equal(t, "MONTHLY OFFICE RENT MARCH PREMISES", second.Description)
	assert.Equal(t, model.DirectionExpense, second.Type)

	// Positive amounts are income; the stored amount stays positive.
	third := transactions[2]
	assert.Equal(t, model.DirectionIncome, third.Type)
	assert.InDelta(t, 12000.00, third.Amount, 0.001)
}

func TestParseFileRejectsGarbage(t *testing.T) {
	parser := NewParser()

	_, err := parser.ParseFile(context.Background(), strings.NewReader("not an ofx file"), "acme")
	assert.Error(t, err)
}

func TestPreprocessOFX(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "fixes mixed case severity",
			input: "<SEVERITY>Info</SEVERITY>",
			want:  "<SEVERITY>INFO</SEVERITY>",
		},
		{
			name:  "closes unterminated tags",
			input: "<BANKTRANLIST",
			want:  "<BANKTRANLIST>",
		},
		{
			name:  "trims leading blank lines",
			input: "\n\n  OFXHEADER:100",
			want:  "OFXHEADER:100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parser.preprocessOFX(tt.input))
		})
	}
}
