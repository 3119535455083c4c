package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var opened = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func reportTrades() []domain.Trade {
	return []domain.Trade{
		{
			ID: "t1", Timestamp: opened.UnixMilli(), Market: domain.MarketPerp, Symbol: "SOL-PERP",
			Side: domain.SideLong, OrderType: domain.OrderLimit, Size: 1, EntryPrice: 1000,
			Fee: 1, FeeType: domain.Fee(domain.FeeMaker), PnL: domain.Float(100), Status: domain.StatusClosed,
		},
		{
			ID: "t2", Timestamp: opened.Add(time.Hour).UnixMilli(), Market: domain.MarketPerp, Symbol: "BTC-PERP",
			Side: domain.SideShort, OrderType: domain.OrderIOC, Size: 2, EntryPrice: 500,
			Fee: 2, FeeType: domain.Fee(domain.FeeTaker), Rebate: domain.Float(0.5), PnL: domain.Float(-50), Status: domain.StatusClosed,
		},
		{
			ID: "t3", Timestamp: opened.Add(2 * time.Hour).UnixMilli(), Market: domain.MarketSpot, Symbol: "SOL/USDC",
			Side: domain.SideBuy, OrderType: domain.OrderMarket, Size: 10, EntryPrice: 100,
			Fee: 1, Status: domain.StatusOpen,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	trades := []domain.Trade{
		{
			ID: "t1", Timestamp: opened.UnixMilli(), Market: domain.MarketPerp, Symbol: "SOL-PERP",
			Side: domain.SideLong, OrderType: domain.OrderLimit, Size: 1.5, EntryPrice: 100,
			ExitPrice: domain.Float(110), Fee: 0.25, FeeType: domain.Fee(domain.FeeMaker), PnL: domain.Float(15),
			Status: domain.StatusClosed, Leverage: domain.Int(5), Duration: domain.Int64(60000),
		},
		{
			ID: "t2", Timestamp: opened.UnixMilli(), Market: domain.MarketSpot, Symbol: "ETH/USDC",
			Side: domain.SideBuy, OrderType: domain.OrderMarket, Size: 2, EntryPrice: 3000,
			Fee: 3.6, Rebate: domain.Float(0.1), Status: domain.StatusOpen,
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, trades, time.UTC))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID,Date,Symbol,Market,Side,Order Type,Size,Entry Price,Exit Price,Fee,Fee Type,Rebate,PnL,Status,Leverage,Duration (ms)", lines[0])
	assert.Equal(t,
		`"t1","2024-03-01 10:00:00","SOL-PERP","PERP","LONG","LIMIT","1.500000","100.000000","110.000000","0.250000","MAKER","0","15.000000","CLOSED","5","60000"`,
		lines[1])
	assert.Equal(t,
		`"t2","2024-03-01 10:00:00","ETH/USDC","SPOT","BUY","MARKET","2.000000","3000.000000","","3.600000","UNKNOWN","0.100000","","OPEN","",""`,
		lines[2])
}

func TestWriteCSV_EscapesQuotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []domain.Trade{{ID: `a"b`, Timestamp: opened.UnixMilli()}}, time.UTC))
	assert.Contains(t, buf.String(), `"a""b"`)
}

func TestWriteCSV_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, time.UTC))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, reportTrades()[:1], time.UTC))
	assert.Contains(t, buf.String(), "\n  {\n    \"id\": \"t1\"")

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "2024-03-01 10:00:00", decoded[0]["date"])
	assert.Equal(t, "SOL-PERP", decoded[0]["symbol"])
	assert.Equal(t, 100.0, decoded[0]["pnl"])
	assert.NotContains(t, decoded[0], "exitPrice")
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, nil, time.UTC))
	assert.Equal(t, "[]\n", buf.String())
}

func reportLine(label, value string) string {
	return fmt.Sprintf("%-21s%s\n", label, value)
}

func TestReport(t *testing.T) {
	generated := time.Date(2024, 3, 5, 8, 30, 0, 0, time.UTC)
	r := Report(reportTrades(), generated)

	assert.True(t, strings.HasPrefix(r, reportRule+"\n"))
	assert.Contains(t, r, "Generated: 2024-03-05 08:30:00\n")
	assert.Contains(t, r, "Total Trades:        3\n")

	expected := []string{
		reportLine("Closed Trades:", "2"),
		reportLine("Open Trades:", "1"),
		reportLine("Total PnL:", "$50.00"),
		reportLine("Win Rate:", "50.00%"),
		reportLine("Profit Factor:", "2.00"),
		reportLine("Winning Trades:", "1"),
		reportLine("Losing Trades:", "1"),
		reportLine("Average Win:", "$100.00"),
		reportLine("Average Loss:", "$50.00"),
		reportLine("Largest Win:", "$100.00"),
		reportLine("Largest Loss:", "$-50.00"),
		reportLine("Total Volume:", "$3000.00"),
		reportLine("Total Fees:", "$4.00"),
		reportLine("Fee Ratio:", "0.1333%"),
		reportLine("Maker Fees:", "$1.00"),
		reportLine("Taker Fees:", "$2.00"),
		reportLine("Total Rebates:", "$0.50"),
		reportLine("Spot Trades:", "1"),
		reportLine("Perp Trades:", "2"),
		reportLine("Long Trades:", "1"),
		reportLine("Short Trades:", "1"),
		reportLine("IOC:", "1"),
		reportLine("Limit:", "1"),
		reportLine("Market:", "1"),
	}
	for _, want := range expected {
		assert.Contains(t, r, want)
	}

	sections := []string{"SUMMARY", "PERFORMANCE", "VOLUME & FEES", "BY MARKET TYPE", "BY DIRECTION", "BY ORDER TYPE"}
	last := strings.Index(r, "TRADING PERFORMANCE REPORT")
	require.GreaterOrEqual(t, last, 0)
	for _, s := range sections {
		header := "\n" + s + "\n" + strings.Repeat("-", len(s)) + "\n"
		idx := strings.Index(r, header)
		require.Greater(t, idx, last, "section %s out of order", s)
		last = idx
	}
	assert.Greater(t, strings.Index(r, "END OF REPORT"), last)
}

func TestReport_ZeroDenominators(t *testing.T) {
	wins := []domain.Trade{{ID: "w", Status: domain.StatusClosed, PnL: domain.Float(10)}}
	r := Report(wins, opened)
	assert.Contains(t, r, reportLine("Profit Factor:", "0.00"))
	assert.Contains(t, r, reportLine("Fee Ratio:", "0.0000%"))

	empty := Report(nil, opened)
	assert.Contains(t, empty, reportLine("Total Trades:", "0"))
	assert.Contains(t, empty, reportLine("Win Rate:", "0.00%"))
	assert.Contains(t, empty, reportLine("Largest Loss:", "$0.00"))
}

func TestFormat(t *testing.T) {
	tests := []struct {
		in          string
		ext         string
		contentType string
	}{
		{in: "csv", ext: "csv", contentType: "text/csv"},
		{in: "json", ext: "json", contentType: "application/json"},
		{in: "report", ext: "txt", contentType: "text/plain; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := ParseFormat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, f.Extension())
			assert.Equal(t, tt.contentType, f.ContentType())
		})
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ports.ErrInvalidRequest))
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "trades-2024-03-05.csv", Filename("trades", "csv", time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC)))
	assert.Equal(t, "report-2024-03-05.txt", Filename(FormatReport.BaseName(), FormatReport.Extension(), time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC)))
}

func TestWrite_Dispatch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatReport, reportTrades(), time.UTC, opened))
	assert.Contains(t, buf.String(), "TRADING PERFORMANCE REPORT")

	buf.Reset()
	require.NoError(t, Write(&buf, FormatCSV, reportTrades(), time.UTC, opened))
	assert.True(t, strings.HasPrefix(buf.String(), "ID,Date"))

	assert.Error(t, Write(&buf, Format("xml"), nil, time.UTC, opened))
}
