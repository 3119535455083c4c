package analytics

import (
	"testing"
	"time"

	"tradeDashboard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBySymbol(t *testing.T) {
	win := closedTrade("a", at(0), domain.SideLong, 100)
	win.Duration = domain.Int64(1000)
	noPnL := closedTrade("b", at(time.Minute), domain.SideLong, 0)
	noPnL.PnL = nil
	btc := openTrade("c", at(2*time.Minute))
	btc.Symbol = "BTC-PERP"
	btc.Size = 1
	btc.EntryPrice = 50000

	stats := BySymbol([]domain.Trade{win, noPnL, btc})

	require.Len(t, stats, 2)
	assert.Equal(t, SymbolStat{Symbol: "BTC-PERP", Trades: 1, Volume: 50000}, stats[0])
	// Status CLOSED is the denominator even when PnL is missing.
	assert.Equal(t, SymbolStat{Symbol: "SOL-PERP", Trades: 2, Volume: 200, PnL: 100, WinRate: 50, AvgTradeDuration: 500}, stats[1])
	assert.Empty(t, BySymbol(nil))
}

func TestByTime(t *testing.T) {
	sunday := closedTrade("a", time.Date(2024, 3, 3, 9, 30, 0, 0, time.UTC).UnixMilli(), domain.SideLong, 50)
	monday1 := closedTrade("b", time.Date(2024, 3, 4, 17, 0, 0, 0, time.UTC).UnixMilli(), domain.SideLong, -20)
	monday2 := closedTrade("c", time.Date(2024, 3, 4, 17, 45, 0, 0, time.UTC).UnixMilli(), domain.SideShort, 30)
	open := openTrade("d", time.Date(2024, 3, 4, 3, 0, 0, 0, time.UTC).UnixMilli())

	tb := ByTime([]domain.Trade{sunday, monday1, monday2, open}, time.UTC)

	require.Len(t, tb.Hourly, 24)
	require.Len(t, tb.Weekday, 7)
	require.Len(t, tb.Sessions, 3)

	assert.Equal(t, TimeBucket{Label: "09:00", Trades: 1, PnL: 50, Wins: 1, WinRate: 100}, tb.Hourly[9])
	assert.Equal(t, TimeBucket{Label: "17:00", Trades: 2, PnL: 10, Wins: 1, WinRate: 50}, tb.Hourly[17])
	assert.Equal(t, 0, tb.Hourly[3].Trades, "open trades are excluded")

	assert.Equal(t, "Sun", tb.Weekday[0].Label)
	assert.Equal(t, 1, tb.Weekday[0].Trades)
	assert.Equal(t, 2, tb.Weekday[1].Trades)

	assert.Equal(t, TimeBucket{Label: "Asia"}, tb.Sessions[0])
	assert.Equal(t, 1, tb.Sessions[1].Trades)
	assert.Equal(t, 2, tb.Sessions[2].Trades)

	require.NotNil(t, tb.BestHour)
	require.NotNil(t, tb.WorstHour)
	assert.Equal(t, "09:00", tb.BestHour.Label)
	assert.Equal(t, "17:00", tb.WorstHour.Label)
}

func TestByTime_Empty(t *testing.T) {
	tb := ByTime(nil, time.UTC)
	assert.Len(t, tb.Hourly, 24)
	assert.Nil(t, tb.BestHour)
	assert.Nil(t, tb.WorstHour)
}

func TestByOrderType(t *testing.T) {
	limitWin := closedTrade("a", at(0), domain.SideLong, 10)
	limitNoPnL := closedTrade("b", at(time.Minute), domain.SideLong, 0)
	limitNoPnL.PnL = nil
	limitOpen := openTrade("c", at(2*time.Minute))
	limitOpen.OrderType = domain.OrderLimit
	iocLoss := closedTrade("d", at(3*time.Minute), domain.SideShort, -5)
	iocLoss.OrderType = domain.OrderIOC

	stats := ByOrderType([]domain.Trade{limitWin, limitNoPnL, limitOpen, iocLoss})

	require.Len(t, stats, 3)
	assert.Equal(t, OrderTypeStat{OrderType: domain.OrderIOC, Trades: 1, Volume: 100, PnL: -5, WinRate: 0, AvgPnL: -5}, stats[0])
	assert.Equal(t, OrderTypeStat{OrderType: domain.OrderLimit, Trades: 3, Volume: 400, PnL: 10, Wins: 1, WinRate: 50, AvgPnL: 5}, stats[1])
	assert.Equal(t, OrderTypeStat{OrderType: domain.OrderMarket}, stats[2])
}

func TestDirectional(t *testing.T) {
	buy := closedTrade("a", at(0), domain.SideBuy, 10)
	buy.Market = domain.MarketSpot
	sell := closedTrade("b", at(time.Minute), domain.SideSell, -5)
	sell.Market = domain.MarketSpot
	long := closedTrade("c", at(2*time.Minute), domain.SideLong, 20)

	d := Directional([]domain.Trade{buy, sell, long, openTrade("o", at(0))})

	assert.Equal(t, SideStat{Trades: 2, PnL: 30, Volume: 200, Wins: 2, WinRate: 100}, d.Long)
	assert.Equal(t, SideStat{Trades: 1, PnL: -5, Volume: 100}, d.Short)
	assert.InDelta(t, 66.667, d.LongPercent, 0.001)
	assert.Equal(t, BiasLong, d.Bias)

	assert.Equal(t, BiasNeutral, Directional(nil).Bias)
}

func TestFees(t *testing.T) {
	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	maker := closedTrade("a", time.Date(2024, 3, 9, 8, 0, 0, 0, time.UTC).UnixMilli(), domain.SideLong, 1)
	maker.Market = domain.MarketSpot
	maker.Fee = 1
	maker.FeeType = domain.Fee(domain.FeeMaker)
	maker.Rebate = domain.Float(0.25)
	taker := closedTrade("b", time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC).UnixMilli(), domain.SideLong, 1)
	taker.Fee = 2
	taker.FeeType = domain.Fee(domain.FeeTaker)
	old := closedTrade("c", time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC).UnixMilli(), domain.SideLong, 1)
	old.Fee = 4

	f := Fees([]domain.Trade{maker, taker, old}, 3, now, time.UTC)

	assert.Equal(t, []FeeDay{
		{Date: "2024-03-08", Fees: 0, Cumulative: 0},
		{Date: "2024-03-09", Fees: 1, Cumulative: 1},
		{Date: "2024-03-10", Fees: 2, Cumulative: 3},
	}, f.Daily)
	assert.Equal(t, 3.0, f.WindowFees)
	assert.Equal(t, 1.0, f.AvgDailyFees)
	assert.Equal(t, 7.0, f.TotalFees)
	assert.Equal(t, 1.0, f.SpotFees)
	assert.Equal(t, 6.0, f.PerpFees)
	assert.Equal(t, 1.0, f.MakerFees)
	assert.Equal(t, 2.0, f.TakerFees)
	assert.Equal(t, 4.0, f.UnknownFees)
	assert.Equal(t, 0.25, f.Rebates)
	assert.Equal(t, 6.75, f.NetFees)
	assert.InDelta(t, 7.0/300*100, f.FeeToVolumePct, 1e-9)
}

func TestVolumeSeries(t *testing.T) {
	now := time.Date(2024, 3, 10, 23, 0, 0, 0, time.UTC)
	inWindow := openTrade("a", time.Date(2024, 3, 10, 1, 0, 0, 0, time.UTC).UnixMilli())
	outside := openTrade("b", time.Date(2024, 3, 1, 1, 0, 0, 0, time.UTC).UnixMilli())

	series := VolumeSeries([]domain.Trade{inWindow, outside}, 2, now, time.UTC)

	assert.Equal(t, []VolumeDay{
		{Date: "2024-03-09"},
		{Date: "2024-03-10", Volume: 200, Fees: 1, Trades: 1},
	}, series)
	assert.Empty(t, VolumeSeries(nil, 0, now, time.UTC))
}

func TestAllocation(t *testing.T) {
	positions := []domain.Position{
		{Symbol: "SOL-PERP", Size: 10, CurrentPrice: 100},
		{Symbol: "BTC-PERP", Size: 1, CurrentPrice: 6000},
		{Symbol: "SOL-PERP", Size: 5, CurrentPrice: 100},
	}

	slices := Allocation(positions, nil, false)
	require.Len(t, slices, 2)
	assert.Equal(t, AllocationSlice{Symbol: "BTC-PERP", Value: 6000, Percent: 80}, slices[0])
	assert.Equal(t, AllocationSlice{Symbol: "SOL-PERP", Value: 1500, Percent: 20}, slices[1])

	byVolume := Allocation(nil, []domain.Trade{openTrade("a", at(0))}, true)
	assert.Equal(t, []AllocationSlice{{Symbol: "SOL-PERP", Value: 200, Percent: 100}}, byVolume)
}
