package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"tradeDashboard/internal/domain"
	"tradeDashboard/internal/ports"
)

// SaveEntry inserts the entry or replaces the stored entry with the same ID.
func (r *Repository) SaveEntry(ctx context.Context, e *domain.JournalEntry) error {
	const query = `
	INSERT INTO journal_entries (id, trade_id, date, notes, tags, sentiment, rating, screenshots, strategy, mistakes, lessons)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
		trade_id = excluded.trade_id, date = excluded.date, notes = excluded.notes, tags = excluded.tags,
		sentiment = excluded.sentiment, rating = excluded.rating, screenshots = excluded.screenshots,
		strategy = excluded.strategy, mistakes = excluded.mistakes, lessons = excluded.lessons`

	lists := make([]string, 0, 4)
	for _, l := range [][]string{e.Tags, e.Screenshots, e.Mistakes, e.Lessons} {
		encoded, err := encodeList(l)
		if err != nil {
			return fmt.Errorf("failed to encode journal entry %s: %w", e.ID, err)
		}
		lists = append(lists, encoded)
	}

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.TradeID, e.Date, e.Notes, lists[0], string(e.Sentiment), e.Rating, lists[1], e.Strategy, lists[2], lists[3])
	if err != nil {
		return fmt.Errorf("failed to save journal entry %s: %w", e.ID, mapWriteError(err))
	}
	r.logger.Debug(ctx, "Journal entry saved", map[string]interface{}{"entryID": e.ID, "tradeID": e.TradeID})
	return nil
}

// FindEntries retrieves every journal entry, newest date first.
func (r *Repository) FindEntries(ctx context.Context) ([]domain.JournalEntry, error) {
	const query = `
	SELECT id, trade_id, date, notes, tags, sentiment, rating, screenshots, strategy, mistakes, lessons
	FROM journal_entries
	ORDER BY date DESC, id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journal entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal entry: %w", err)
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}
	return entries, nil
}

// DeleteEntry removes a journal entry by ID.
func (r *Repository) DeleteEntry(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM journal_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete journal entry %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected for delete journal entry %s: %w", id, err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("journal entry %s not found for delete: %w", id, ports.ErrNotFound)
	}
	return nil
}

func scanEntry(s scanner) (*domain.JournalEntry, error) {
	e := &domain.JournalEntry{}
	var sentiment, tags, screenshots, mistakes, lessons string
	err := s.Scan(&e.ID, &e.TradeID, &e.Date, &e.Notes, &tags, &sentiment, &e.Rating,
		&screenshots, &e.Strategy, &mistakes, &lessons)
	if err != nil {
		return nil, err
	}
	e.Sentiment = domain.Sentiment(sentiment)
	for _, col := range []struct {
		raw string
		dst *[]string
	}{{tags, &e.Tags}, {screenshots, &e.Screenshots}, {mistakes, &e.Mistakes}, {lessons, &e.Lessons}} {
		if err := decodeList(col.raw, col.dst); err != nil {
			return nil, fmt.Errorf("entry %s: %w", e.ID, err)
		}
	}
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	return string(b), err
}

// decodeList leaves dst nil for an empty list so optional fields stay omitted in JSON.
func decodeList(raw string, dst *[]string) error {
	var list []string
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return fmt.Errorf("failed to decode list column: %w", err)
	}
	if len(list) > 0 {
		*dst = list
	}
	return nil
}
