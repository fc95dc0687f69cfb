package foodlog

import (
	"context"

	"github.com/samber/lo"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// Operation names carried by RemoteError and log entries.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// Service performs food log operations through one shared handle. It holds
// no state besides its options and is safe for concurrent use when the
// handle is.
type Service struct {
	handle types.Handle
	opts   Options
}

// New returns a Service using handle, which must already be attached.
func New(handle types.Handle, opts Options) *Service {
	return &Service{handle: handle, opts: opts.withDefaults()}
}

// List returns all records of userID, newest first by created_at. The
// result is never nil on success.
func (s *Service) List(ctx context.Context, userID string) ([]types.FoodLogRecord, error) {
	if userID == "" {
		return nil, s.invalid(OpList, types.ColumnUserID)
	}

	coll, err := s.collection(OpList)
	if err != nil {
		return nil, err
	}
	q := types.Where(types.Eq(types.ColumnUserID, userID)).OrderBy(types.Desc(types.ColumnCreatedAt))
	rows, err := coll.Select(ctx, q)
	if err != nil {
		return nil, s.remote(OpList, err, "user_id", userID)
	}

	records := make([]types.FoodLogRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, types.RecordFromRow(row))
	}
	return records, nil
}

// Create inserts rec and returns it as stored. user_id and created_at may
// also be given in Fields. A missing CreatedAt is set from the service
// clock; an explicit one is sent unchanged.
func (s *Service) Create(ctx context.Context, rec types.FoodLogRecord) (types.FoodLogRecord, error) {
	rec = rec.Normalize()
	if rec.UserID == "" {
		return types.FoodLogRecord{}, s.invalid(OpCreate, types.ColumnUserID)
	}
	if rec.CreatedAt == "" {
		rec.CreatedAt = FormatTimestamp(s.opts.Clock.Now())
	}

	coll, err := s.collection(OpCreate)
	if err != nil {
		return types.FoodLogRecord{}, err
	}
	row, err := coll.Insert(ctx, rec.Row())
	if err != nil {
		return types.FoodLogRecord{}, s.remote(OpCreate, err, "user_id", rec.UserID)
	}
	return types.RecordFromRow(row), nil
}

// Update applies updates to the record with the given id and returns the
// stored result. Only the keys in updates are sent; last write wins.
func (s *Service) Update(ctx context.Context, id string, updates map[string]any) (types.FoodLogRecord, error) {
	if id == "" {
		return types.FoodLogRecord{}, s.invalid(OpUpdate, types.ColumnID)
	}

	coll, err := s.collection(OpUpdate)
	if err != nil {
		return types.FoodLogRecord{}, err
	}
	row, err := coll.Update(ctx, types.Where(types.Eq(types.ColumnID, id)), lo.Assign(updates))
	if err != nil {
		return types.FoodLogRecord{}, s.remote(OpUpdate, err, "id", id)
	}
	return types.RecordFromRow(row), nil
}

// Delete removes the record with the given id and reports true. Deleting an
// id that does not exist succeeds as far as the store does.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if id == "" {
		return false, s.invalid(OpDelete, types.ColumnID)
	}

	coll, err := s.collection(OpDelete)
	if err != nil {
		return false, err
	}
	if err := coll.Delete(ctx, types.Where(types.Eq(types.ColumnID, id))); err != nil {
		return false, s.remote(OpDelete, err, "id", id)
	}
	return true, nil
}

// collection resolves the configured collection on the shared handle.
func (s *Service) collection(op string) (types.Collection, error) {
	coll, err := s.handle.From(s.opts.Collection)
	if err != nil {
		return nil, s.remote(op, err, "collection", s.opts.Collection)
	}
	return coll, nil
}

// invalid logs and returns a ValidationError for field.
func (s *Service) invalid(op, field string) error {
	err := &types.ValidationError{Field: field}
	s.opts.Logger.Error("food log "+op+" rejected", "op", op, "err", err)
	return err
}

// remote logs err and returns it as a RemoteError.
func (s *Service) remote(op string, err error, attrs ...any) error {
	s.opts.Logger.Error("food log "+op+" failed", append([]any{"op", op, "err", err}, attrs...)...)
	return &types.RemoteError{Op: op, Err: err}
}
