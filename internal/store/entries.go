package store

import (
	"fmt"
	"time"
)

func (s *Store) CreateEntry(date string, earnings, km, hours, costs float64) (*Entry, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO entries (date, total_earnings, km_driven, hours_worked, additional_costs, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		date, earnings, km, hours, costs, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetEntry(id)
}

func (s *Store) GetEntry(id int64) (*Entry, error) {
	e := &Entry{}
	var createdAt string

	err := s.db.QueryRow(
		`SELECT id, date, total_earnings, km_driven, hours_worked, additional_costs, created_at
		 FROM entries WHERE id = ?`, id,
	).Scan(&e.ID, &e.Date, &e.TotalEarnings, &e.KmDriven, &e.HoursWorked, &e.AdditionalCosts, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("get entry %d: %w", id, err)
	}
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return e, nil
}

// UpdateEntry replaces all mutable fields of the entry with the given id.
func (s *Store) UpdateEntry(id int64, date string, earnings, km, hours, costs float64) (*Entry, error) {
	_, err := s.db.Exec(
		`UPDATE entries SET date = ?, total_earnings = ?, km_driven = ?, hours_worked = ?, additional_costs = ?
		 WHERE id = ?`,
		date, earnings, km, hours, costs, id,
	)
	if err != nil {
		return nil, fmt.Errorf("update entry %d: %w", id, err)
	}
	return s.GetEntry(id)
}

func (s *Store) DeleteEntry(id int64) error {
	_, err := s.db.Exec(`DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete entry %d: %w", id, err)
	}
	return nil
}

// DeleteEntriesBefore removes every entry with a date strictly before cutoff
// (YYYY-MM-DD). Returns the number of removed entries.
func (s *Store) DeleteEntriesBefore(cutoff string) (int64, error) {
	res, err := s.db.Exec(`DELETE FROM entries WHERE date < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete entries before %s: %w", cutoff, err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (s *Store) ListEntries(f EntryFilter) ([]Entry, error) {
	query := `SELECT id, date, total_earnings, km_driven, hours_worked, additional_costs, created_at FROM entries WHERE 1=1`
	var args []any

	if f.From != nil {
		query += ` AND date >= ?`
		args = append(args, *f.From)
	}
	if f.To != nil {
		query += ` AND date <= ?`
		args = append(args, *f.To)
	}
	query += ` ORDER BY date DESC, id DESC`
	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var createdAt string
		if err := rows.Scan(&e.ID, &e.Date, &e.TotalEarnings, &e.KmDriven, &e.HoursWorked, &e.AdditionalCosts, &createdAt); err != nil {
			return nil, err
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceAllEntries deletes every entry and inserts the given ones in a single
// transaction. Used by backup restore; original IDs are not preserved.
func (s *Store) ReplaceAllEntries(entries []Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin restore: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("clear entries: %w", err)
	}
	for _, e := range entries {
		createdAt := e.CreatedAt
		if createdAt.IsZero() {
			createdAt = time.Now().UTC()
		}
		_, err := tx.Exec(
			`INSERT INTO entries (date, total_earnings, km_driven, hours_worked, additional_costs, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			e.Date, e.TotalEarnings, e.KmDriven, e.HoursWorked, e.AdditionalCosts,
			createdAt.Format(time.RFC3339),
		)
		if err != nil {
			return fmt.Errorf("insert restored entry: %w", err)
		}
	}
	return tx.Commit()
}
