package journal

import (
	"errors"
	"testing"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []domain.JournalEntry {
	return []domain.JournalEntry{
		{ID: "j1", TradeID: "t1", Date: "2024-03-01", Tags: []string{"scalp", "trend"}, Sentiment: domain.SentimentBullish, Rating: 4},
		{ID: "j2", TradeID: "t2", Date: "2024-03-01", Tags: []string{"swing"}, Sentiment: domain.SentimentBearish, Rating: 2},
		{ID: "j3", TradeID: "t3", Date: "2024-03-02", Tags: []string{"trend", "news"}, Sentiment: domain.SentimentBullish},
		{ID: "j4", TradeID: "t4", Date: "2024-03-03", Tags: []string{"breakout", "range", "reversal", "trend"}, Sentiment: domain.SentimentNeutral, Rating: 3},
	}
}

func entryIDs(entries []domain.JournalEntry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func TestQueries(t *testing.T) {
	entries := sampleEntries()

	e, ok := ByTradeID(entries, "t3")
	require.True(t, ok)
	assert.Equal(t, "j3", e.ID)
	_, ok = ByTradeID(entries, "missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"j1", "j2"}, entryIDs(ByDate(entries, "2024-03-01")))
	assert.Equal(t, []string{"j1", "j3", "j4"}, entryIDs(ByTag(entries, "trend")))
	assert.Equal(t, []string{"j1", "j3"}, entryIDs(BySentiment(entries, domain.SentimentBullish)))
	assert.Empty(t, ByTag(entries, "unknown"))
	assert.NotNil(t, ByTag(entries, "unknown"))
}

func TestAllTags(t *testing.T) {
	assert.Equal(t,
		[]string{"breakout", "news", "range", "reversal", "scalp", "swing", "trend"},
		AllTags(sampleEntries()))
	assert.Empty(t, AllTags(nil))
}

func TestComputeStats(t *testing.T) {
	st := ComputeStats(sampleEntries())

	assert.Equal(t, 4, st.TotalEntries)
	assert.InDelta(t, 3.0, st.AvgRating, 1e-9, "unrated entries are excluded")

	require.Len(t, st.MostUsedTags, 5)
	assert.Equal(t, TagCount{Tag: "trend", Count: 3}, st.MostUsedTags[0])
	assert.Equal(t, []string{"trend", "breakout", "news", "range", "reversal"}, []string{
		st.MostUsedTags[0].Tag, st.MostUsedTags[1].Tag, st.MostUsedTags[2].Tag,
		st.MostUsedTags[3].Tag, st.MostUsedTags[4].Tag,
	})

	require.Len(t, st.SentimentBreakdown, 3)
	assert.Equal(t, SentimentCount{Sentiment: domain.SentimentBullish, Count: 2, Percent: 50}, st.SentimentBreakdown[0])
	assert.Equal(t, SentimentCount{Sentiment: domain.SentimentBearish, Count: 1, Percent: 25}, st.SentimentBreakdown[1])
	assert.Equal(t, SentimentCount{Sentiment: domain.SentimentNeutral, Count: 1, Percent: 25}, st.SentimentBreakdown[2])
}

func TestComputeStats_Empty(t *testing.T) {
	st := ComputeStats(nil)
	assert.Zero(t, st.TotalEntries)
	assert.Zero(t, st.AvgRating)
	assert.Empty(t, st.MostUsedTags)
	require.Len(t, st.SentimentBreakdown, 3)
	for _, row := range st.SentimentBreakdown {
		assert.Zero(t, row.Count)
		assert.Zero(t, row.Percent)
	}
}

func TestValidate(t *testing.T) {
	valid := domain.JournalEntry{TradeID: "t1", Date: "2024-03-01", Sentiment: domain.SentimentNeutral, Rating: 5}

	tests := []struct {
		name    string
		mutate  func(e *domain.JournalEntry)
		wantErr bool
	}{
		{name: "valid", mutate: func(e *domain.JournalEntry) {}},
		{name: "unrated is fine", mutate: func(e *domain.JournalEntry) { e.Rating = 0 }},
		{name: "missing trade id", mutate: func(e *domain.JournalEntry) { e.TradeID = "" }, wantErr: true},
		{name: "rating too high", mutate: func(e *domain.JournalEntry) { e.Rating = 6 }, wantErr: true},
		{name: "negative rating", mutate: func(e *domain.JournalEntry) { e.Rating = -1 }, wantErr: true},
		{name: "unknown sentiment", mutate: func(e *domain.JournalEntry) { e.Sentiment = "EUPHORIC" }, wantErr: true},
		{name: "bad date", mutate: func(e *domain.JournalEntry) { e.Date = "03/01/2024" }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := valid
			tt.mutate(&e)
			err := Validate(&e)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ports.ErrInvalidRequest))
				return
			}
			assert.NoError(t, err)
		})
	}
}
