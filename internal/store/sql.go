package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"backend-turnero/internal/apperror"
	"backend-turnero/internal/models"
)

// SQLStore - database/sql implementation of every store interface. Works on
// MySQL (go-sql-driver) and SQLite (modernc) with the same queries.
type SQLStore struct {
	db       *sql.DB
	notifier Notifier
	now      func() time.Time
}

func NewSQLStore(db *sql.DB, notifier Notifier) *SQLStore {
	return &SQLStore{
		db:       db,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

type rowScanner interface {
	Scan(dest ...any) error
}

/*
|--------------------------------------------------------------------------
| VESSELS
|--------------------------------------------------------------------------
*/

const vesselColumns = `id, display_name, queue_position, status, category, updated_at`

func scanVessel(row rowScanner) (models.Vessel, error) {
	var v models.Vessel
	var status, category string
	if err := row.Scan(&v.ID, &v.DisplayName, &v.Position, &status, &category, &v.UpdatedAt); err != nil {
		return v, err
	}
	v.Status = models.VesselStatus(status)
	v.Category = models.Category(category)
	return v, nil
}

// FetchAllOrdered - Every vessel, ascending by position. Ties keep id order
// so duplicate positions resolve the same way on every read.
func (s *SQLStore) FetchAllOrdered(ctx context.Context) ([]models.Vessel, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+vesselColumns+` FROM vessels ORDER BY queue_position ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("fetch vessels: %w", err)
	}
	defer rows.Close()

	vessels := []models.Vessel{}
	for rows.Next() {
		v, err := scanVessel(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vessel: %w", err)
		}
		vessels = append(vessels, v)
	}
	return vessels, rows.Err()
}

// Subscribe - Deliver the ordered list now and again after every change
// signal. The returned func stops delivery and releases the subscription.
func (s *SQLStore) Subscribe(ctx context.Context, onChange func([]models.Vessel), onError func(error)) (func(), error) {
	if s.notifier == nil {
		return nil, errors.New("store has no notifier")
	}

	ctx, cancel := context.WithCancel(ctx)
	changes, err := s.notifier.Subscribe(ctx, TopicVessels)
	if err != nil {
		cancel()
		return nil, fmt.Errorf("subscribe: %w", err)
	}

	go func() {
		s.deliver(ctx, onChange, onError)
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-changes:
				if !ok {
					return
				}
				s.deliver(ctx, onChange, onError)
			}
		}
	}()

	return cancel, nil
}

func (s *SQLStore) deliver(ctx context.Context, onChange func([]models.Vessel), onError func(error)) {
	vessels, err := s.FetchAllOrdered(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		if onError != nil {
			onError(err)
		}
		return
	}
	onChange(vessels)
}

// BatchUpdate - Apply every update in one transaction. An unknown id rolls
// the whole batch back with ErrNotFound.
func (s *SQLStore) BatchUpdate(ctx context.Context, updates []Update) error {
	if len(updates) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	for _, u := range updates {
		if err := updateVessel(ctx, tx, u.ID, u.Fields, now); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch: %w", err)
	}

	s.publish(ctx)
	return nil
}

func (s *SQLStore) UpdateOne(ctx context.Context, id string, fields Fields) error {
	if err := updateVessel(ctx, s.db, id, fields, s.now()); err != nil {
		return err
	}
	s.publish(ctx)
	return nil
}

func updateVessel(ctx context.Context, db execer, id string, f Fields, now time.Time) error {
	sets := []string{"updated_at = ?"}
	args := []any{now}

	if f.Position != nil {
		sets = append(sets, "queue_position = ?")
		args = append(args, *f.Position)
	}
	if f.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, string(*f.Status))
	}
	args = append(args, id)

	res, err := db.ExecContext(ctx, `UPDATE vessels SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
	if err != nil {
		return fmt.Errorf("update vessel %s: %w", id, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update vessel %s: %w", id, err)
	}
	if n == 0 {
		return fmt.Errorf("vessel %s: %w", id, apperror.ErrNotFound)
	}
	return nil
}

// InsertMany - Seed vessels in one transaction.
func (s *SQLStore) InsertMany(ctx context.Context, vessels []models.Vessel) error {
	if len(vessels) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	now := s.now()
	for _, v := range vessels {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO vessels (id, display_name, queue_position, status, category, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, v.ID, v.DisplayName, v.Position, string(v.Status), string(v.Category), now, now)
		if err != nil {
			return fmt.Errorf("insert vessel %s: %w", v.DisplayName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}

	s.publish(ctx)
	return nil
}

// publish runs after commit; a lost signal only delays displays until the
// next write, so it is logged and not returned.
func (s *SQLStore) publish(ctx context.Context) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Publish(context.WithoutCancel(ctx), TopicVessels); err != nil {
		log.Printf("[store] notify %s failed: %v", TopicVessels, err)
	}
}
