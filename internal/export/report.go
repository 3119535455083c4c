package export

import (
	"fmt"
	"io"
	"strings"
	"time"

	"tradeDashboard/internal/domain"

	"github.com/shopspring/decimal"
)

const (
	reportRule  = "================================================================================"
	reportLabel = 21
)

type reportTotals struct {
	total, closed, open     int
	wins, losses            int
	pnl, grossProfit        decimal.Decimal
	grossLoss               decimal.Decimal // positive magnitude
	largestWin, largestLoss decimal.Decimal
	volume, fees            decimal.Decimal
	makerFees, takerFees    decimal.Decimal
	rebates                 decimal.Decimal
	spot, perp              int
	long, short             int
	orderTypes              map[domain.OrderType]int
}

func tally(trades []domain.Trade) reportTotals {
	r := reportTotals{total: len(trades), orderTypes: make(map[domain.OrderType]int)}
	for i := range trades {
		t := &trades[i]
		fee := decimal.NewFromFloat(t.Fee)
		r.fees = r.fees.Add(fee)
		r.volume = r.volume.Add(decimal.NewFromFloat(t.Size).Mul(decimal.NewFromFloat(t.EntryPrice)))
		r.rebates = r.rebates.Add(decimal.NewFromFloat(t.RebateOrZero()))
		if t.FeeType != nil {
			switch *t.FeeType {
			case domain.FeeMaker:
				r.makerFees = r.makerFees.Add(fee)
			case domain.FeeTaker:
				r.takerFees = r.takerFees.Add(fee)
			}
		}

		switch t.Market {
		case domain.MarketSpot:
			r.spot++
		case domain.MarketPerp:
			r.perp++
		}
		switch t.Side {
		case domain.SideLong:
			r.long++
		case domain.SideShort:
			r.short++
		}
		r.orderTypes[t.OrderType]++
		if t.Status == domain.StatusOpen {
			r.open++
		}

		if !t.IsClosedWithPnL() {
			continue
		}
		r.closed++
		pnl := decimal.NewFromFloat(*t.PnL)
		r.pnl = r.pnl.Add(pnl)
		switch {
		case pnl.IsPositive():
			r.wins++
			r.grossProfit = r.grossProfit.Add(pnl)
			r.largestWin = decimal.Max(r.largestWin, pnl)
		case pnl.IsNegative():
			r.losses++
			r.grossLoss = r.grossLoss.Add(pnl.Neg())
			r.largestLoss = decimal.Min(r.largestLoss, pnl)
		}
	}
	return r
}

// Report renders the plain-text performance report. The profit factor reads 0 when there
// are no losses and the fee ratio reads 0 when there is no volume.
func Report(trades []domain.Trade, generatedAt time.Time) string {
	r := tally(trades)

	var winRate, avgWin, avgLoss, profitFactor, feeRatio decimal.Decimal
	hundred := decimal.NewFromInt(100)
	if r.closed > 0 {
		winRate = decimal.NewFromInt(int64(r.wins)).Div(decimal.NewFromInt(int64(r.closed))).Mul(hundred)
	}
	if r.wins > 0 {
		avgWin = r.grossProfit.Div(decimal.NewFromInt(int64(r.wins)))
	}
	if r.losses > 0 {
		avgLoss = r.grossLoss.Div(decimal.NewFromInt(int64(r.losses)))
	}
	if r.grossLoss.IsPositive() {
		profitFactor = r.grossProfit.Div(r.grossLoss)
	}
	if r.volume.IsPositive() {
		feeRatio = r.fees.Div(r.volume).Mul(hundred)
	}

	var b strings.Builder
	b.WriteString(reportRule + "\n")
	b.WriteString("                        TRADING PERFORMANCE REPORT\n")
	fmt.Fprintf(&b, "                    Generated: %s\n", generatedAt.Format(DateTimeLayout))
	b.WriteString(reportRule + "\n")

	section(&b, "SUMMARY")
	line(&b, "Total Trades:", fmt.Sprint(r.total))
	line(&b, "Closed Trades:", fmt.Sprint(r.closed))
	line(&b, "Open Trades:", fmt.Sprint(r.open))

	section(&b, "PERFORMANCE")
	line(&b, "Total PnL:", money(r.pnl))
	line(&b, "Win Rate:", winRate.StringFixed(2)+"%")
	line(&b, "Profit Factor:", profitFactor.StringFixed(2))
	b.WriteString("\n")
	line(&b, "Winning Trades:", fmt.Sprint(r.wins))
	line(&b, "Losing Trades:", fmt.Sprint(r.losses))
	b.WriteString("\n")
	line(&b, "Average Win:", money(avgWin))
	line(&b, "Average Loss:", money(avgLoss))
	b.WriteString("\n")
	line(&b, "Largest Win:", money(r.largestWin))
	line(&b, "Largest Loss:", money(r.largestLoss))

	section(&b, "VOLUME & FEES")
	line(&b, "Total Volume:", money(r.volume))
	line(&b, "Total Fees:", money(r.fees))
	line(&b, "Fee Ratio:", feeRatio.StringFixed(4)+"%")
	b.WriteString("\n")
	line(&b, "Maker Fees:", money(r.makerFees))
	line(&b, "Taker Fees:", money(r.takerFees))
	line(&b, "Total Rebates:", money(r.rebates))

	section(&b, "BY MARKET TYPE")
	line(&b, "Spot Trades:", fmt.Sprint(r.spot))
	line(&b, "Perp Trades:", fmt.Sprint(r.perp))

	section(&b, "BY DIRECTION")
	line(&b, "Long Trades:", fmt.Sprint(r.long))
	line(&b, "Short Trades:", fmt.Sprint(r.short))

	section(&b, "BY ORDER TYPE")
	line(&b, "IOC:", fmt.Sprint(r.orderTypes[domain.OrderIOC]))
	line(&b, "Limit:", fmt.Sprint(r.orderTypes[domain.OrderLimit]))
	line(&b, "Market:", fmt.Sprint(r.orderTypes[domain.OrderMarket]))

	b.WriteString("\n" + reportRule + "\n")
	b.WriteString("                           END OF REPORT\n")
	b.WriteString(reportRule + "\n")
	return b.String()
}

// WriteReport writes Report to w.
func WriteReport(w io.Writer, trades []domain.Trade, generatedAt time.Time) error {
	_, err := io.WriteString(w, Report(trades, generatedAt))
	return err
}

func section(b *strings.Builder, title string) {
	fmt.Fprintf(b, "\n%s\n%s\n", title, strings.Repeat("-", len(title)))
}

func line(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "%-*s%s\n", reportLabel, label, value)
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}
