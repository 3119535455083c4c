package binanceclient

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"tradeDashboard/internal/domain"

	"github.com/adshao/go-binance/v2/futures"
)

// DisplaySymbol maps a USDT-margined contract such as BTCUSDT onto the dashboard's BTC-PERP naming.
func DisplaySymbol(exchangeSymbol string) string {
	if base, ok := strings.CutSuffix(exchangeSymbol, "USDT"); ok && base != "" {
		return base + "-PERP"
	}
	return exchangeSymbol
}

// translateAccountTrade converts one fill. Fills that realized PnL are CLOSED; others are OPEN.
// Maker fills are reported as LIMIT orders and taker fills as MARKET, the endpoint omits the order type.
func translateAccountTrade(f *futures.AccountTrade, leverage int) domain.Trade {
	qty := parseFloat(f.Quantity)
	price := parseFloat(f.Price)
	realized := parseFloat(f.RealizedPnl)
	closing := realized != 0

	t := domain.Trade{
		ID:         fmt.Sprintf("%s-%d", f.Symbol, f.ID),
		Timestamp:  f.Time,
		Market:     domain.MarketPerp,
		Symbol:     DisplaySymbol(f.Symbol),
		Side:       fillSide(string(f.Side), string(f.PositionSide), closing),
		OrderType:  domain.OrderMarket,
		Size:       math.Abs(qty),
		EntryPrice: price,
		Fee:        math.Abs(parseFloat(f.Commission)),
		FeeType:    domain.Fee(domain.FeeTaker),
		Status:     domain.StatusOpen,
	}
	if f.Maker {
		t.OrderType = domain.OrderLimit
		t.FeeType = domain.Fee(domain.FeeMaker)
	}
	if closing {
		t.Status = domain.StatusClosed
		t.PnL = domain.Float(realized)
		t.ExitPrice = domain.Float(price)
	}
	if leverage > 0 {
		t.Leverage = domain.Int(leverage)
	}
	return t
}

// fillSide returns the direction of the position a fill belongs to. In hedge mode the exchange
// reports it directly; in one-way mode a closing SELL belongs to a long and a closing BUY to a short.
func fillSide(side, positionSide string, closing bool) domain.TradeSide {
	switch positionSide {
	case string(futures.PositionSideTypeLong):
		return domain.SideLong
	case string(futures.PositionSideTypeShort):
		return domain.SideShort
	}
	buy := side == string(futures.SideTypeBuy)
	if closing {
		buy = !buy
	}
	if buy {
		return domain.SideLong
	}
	return domain.SideShort
}

// translatePositionRisk converts a position risk row. Flat rows are skipped.
func translatePositionRisk(r *futures.PositionRisk, now int64) (domain.Position, bool) {
	if r == nil {
		return domain.Position{}, false
	}
	amt := parseFloat(r.PositionAmt)
	if amt == 0 {
		return domain.Position{}, false
	}
	entry := parseFloat(r.EntryPrice)
	mark := parseFloat(r.MarkPrice)
	size := math.Abs(amt)

	side := domain.SideLong
	if amt < 0 || string(r.PositionSide) == string(futures.PositionSideTypeShort) {
		side = domain.SideShort
	}

	p := domain.Position{
		ID:            fmt.Sprintf("%s-%s", r.Symbol, side),
		Symbol:        DisplaySymbol(r.Symbol),
		Market:        domain.MarketPerp,
		Side:          side,
		Size:          size,
		EntryPrice:    entry,
		CurrentPrice:  mark,
		UnrealizedPnL: parseFloat(r.UnRealizedProfit),
		Timestamp:     now,
	}
	lev := parseInt(r.Leverage)
	if lev > 0 {
		p.Leverage = domain.Int(lev)
	}
	if liq := parseFloat(r.LiquidationPrice); liq > 0 {
		p.LiquidationPrice = domain.Float(liq)
	}
	if margin := parseFloat(r.IsolatedMargin); margin > 0 {
		p.Margin = domain.Float(margin)
	} else if lev > 0 {
		p.Margin = domain.Float(size * entry / float64(lev))
	}
	return p, true
}

// parseFloat ignores malformed numbers and treats them as zero.
func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
