package journal

import (
	"sort"

	"tradeDashboard/internal/domain"
)

// TagCount is one row of the most-used tags list.
type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

// SentimentCount is one row of the sentiment breakdown.
type SentimentCount struct {
	Sentiment domain.Sentiment `json:"sentiment"`
	Count     int              `json:"count"`
	Percent   float64          `json:"percent"`
}

// Stats summarizes a set of journal entries.
type Stats struct {
	TotalEntries       int              `json:"totalEntries"`
	AvgRating          float64          `json:"avgRating"`
	MostUsedTags       []TagCount       `json:"mostUsedTags"`
	SentimentBreakdown []SentimentCount `json:"sentimentBreakdown"`
}

// ComputeStats averages ratings over rated entries only and keeps the five most used tags.
func ComputeStats(entries []domain.JournalEntry) Stats {
	st := Stats{TotalEntries: len(entries)}

	var ratingSum, rated int
	tagCounts := make(map[string]int)
	sentiments := make(map[domain.Sentiment]int)
	for _, e := range entries {
		if e.Rating > 0 {
			ratingSum += e.Rating
			rated++
		}
		for _, tag := range e.Tags {
			tagCounts[tag]++
		}
		sentiments[e.Sentiment]++
	}
	if rated > 0 {
		st.AvgRating = float64(ratingSum) / float64(rated)
	}

	st.MostUsedTags = make([]TagCount, 0, len(tagCounts))
	for tag, n := range tagCounts {
		st.MostUsedTags = append(st.MostUsedTags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(st.MostUsedTags, func(i, j int) bool {
		a, b := st.MostUsedTags[i], st.MostUsedTags[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Tag < b.Tag
	})
	if len(st.MostUsedTags) > maxTopTags {
		st.MostUsedTags = st.MostUsedTags[:maxTopTags]
	}

	st.SentimentBreakdown = make([]SentimentCount, 0, len(domain.Sentiments))
	for _, s := range domain.Sentiments {
		row := SentimentCount{Sentiment: s, Count: sentiments[s]}
		if st.TotalEntries > 0 {
			row.Percent = float64(row.Count) / float64(st.TotalEntries) * 100
		}
		st.SentimentBreakdown = append(st.SentimentBreakdown, row)
	}
	return st
}
