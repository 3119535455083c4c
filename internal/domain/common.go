package domain

// MarketType distinguishes spot fills from perpetual futures fills.
type MarketType string

const (
	MarketSpot MarketType = "SPOT"
	MarketPerp MarketType = "PERP"
)

// TradeSide is shared by both market kinds. Perps use LONG/SHORT, spot uses BUY/SELL.
type TradeSide string

const (
	SideLong  TradeSide = "LONG"
	SideShort TradeSide = "SHORT"
	SideBuy   TradeSide = "BUY"
	SideSell  TradeSide = "SELL"
)

// sideDirection maps every side value onto the LONG/SHORT axis.
var sideDirection = map[TradeSide]TradeSide{
	SideLong:  SideLong,
	SideShort: SideShort,
	SideBuy:   SideLong,
	SideSell:  SideShort,
}

// Direction returns LONG or SHORT for any known side, or an empty side if unknown.
func (s TradeSide) Direction() TradeSide {
	return sideDirection[s]
}

// Valid reports whether s is one of the known side values.
func (s TradeSide) Valid() bool {
	_, ok := sideDirection[s]
	return ok
}

// OrderType is the execution style of the order that produced a fill.
type OrderType string

const (
	OrderIOC    OrderType = "IOC"
	OrderLimit  OrderType = "LIMIT"
	OrderMarket OrderType = "MARKET"
)

// OrderTypes lists order types in display order.
var OrderTypes = []OrderType{OrderIOC, OrderLimit, OrderMarket}

// TradeStatus represents the status of a trade record.
type TradeStatus string

const (
	StatusOpen   TradeStatus = "OPEN"
	StatusClosed TradeStatus = "CLOSED"
)

// FeeType tells whether the fill added or removed liquidity.
type FeeType string

const (
	FeeMaker FeeType = "MAKER"
	FeeTaker FeeType = "TAKER"
)

// Sentiment is the trader's market view recorded in a journal entry.
type Sentiment string

const (
	SentimentBullish Sentiment = "BULLISH"
	SentimentBearish Sentiment = "BEARISH"
	SentimentNeutral Sentiment = "NEUTRAL"
)

// Sentiments lists sentiments in display order.
var Sentiments = []Sentiment{SentimentBullish, SentimentBearish, SentimentNeutral}

// Valid reports whether s is a known sentiment.
func (s Sentiment) Valid() bool {
	switch s {
	case SentimentBullish, SentimentBearish, SentimentNeutral:
		return true
	}
	return false
}
