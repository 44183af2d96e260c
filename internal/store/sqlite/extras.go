package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/signalsfoundry/skytarget/model"
)

func (s *Store) SetExtra(ctx context.Context, extra model.TargetExtra) error {
	if extra.TargetID == "" || extra.Key == "" {
		return errors.New("targetId and key are required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO target_extras (target_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT(target_id, key) DO UPDATE SET value = excluded.value
	`, extra.TargetID, extra.Key, extra.Value)
	return err
}

func (s *Store) Extras(ctx context.Context, targetID string) ([]model.TargetExtra, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT target_id, key, value FROM target_extras WHERE target_id = ? ORDER BY key
	`, targetID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.TargetExtra
	for rows.Next() {
		var e model.TargetExtra
		if err := rows.Scan(&e.TargetID, &e.Key, &e.Value); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *Store) CreateList(ctx context.Context, name string) (model.TargetList, error) {
	if name == "" {
		return model.TargetList{}, errors.New("list name is required")
	}
	list := model.TargetList{
		ID:      uuid.NewString(),
		Name:    name,
		Created: time.Now().UTC(),
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO target_lists (id, name, created_at) VALUES (?, ?, ?)
	`, list.ID, list.Name, list.Created.UnixMilli())
	if err != nil {
		return model.TargetList{}, err
	}
	return list, nil
}

func (s *Store) AddToList(ctx context.Context, listID, targetID string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO target_list_members (list_id, target_id) VALUES (?, ?)
		ON CONFLICT(list_id, target_id) DO NOTHING
	`, listID, targetID)
	return err
}

func (s *Store) GetList(ctx context.Context, id string) (model.TargetList, error) {
	var (
		list      model.TargetList
		createdAt int64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, created_at FROM target_lists WHERE id = ?
	`, id).Scan(&list.ID, &list.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.TargetList{}, ErrNotFound
		}
		return model.TargetList{}, err
	}
	list.Created = time.UnixMilli(createdAt).UTC()

	rows, err := s.db.QueryContext(ctx, `
		SELECT m.target_id FROM target_list_members m
		JOIN targets t ON t.id = m.target_id
		WHERE m.list_id = ? ORDER BY t.identifier
	`, id)
	if err != nil {
		return model.TargetList{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var targetID string
		if err := rows.Scan(&targetID); err != nil {
			return model.TargetList{}, err
		}
		list.TargetIDs = append(list.TargetIDs, targetID)
	}
	return list, rows.Err()
}
