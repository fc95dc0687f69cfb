package foodlog

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// call is one request seen by fakeCollection.
type call struct {
	method string
	query  types.Query
	row    types.Row
}

// fakeCollection records every call and answers from canned results.
type fakeCollection struct {
	mu    sync.Mutex
	calls []call

	rows   []types.Row
	row    types.Row
	err    error
	fromFn func(method string, q types.Query, row types.Row) (types.Row, error)
}

func (f *fakeCollection) record(method string, q types.Query, row types.Row) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{method: method, query: q, row: row})
}

func (f *fakeCollection) Select(ctx context.Context, q types.Query) ([]types.Row, error) {
	f.record("select", q, nil)
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func (f *fakeCollection) Insert(ctx context.Context, row types.Row) (types.Row, error) {
	f.record("insert", types.Query{}, row)
	if f.fromFn != nil {
		return f.fromFn("insert", types.Query{}, row)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.row, nil
}

func (f *fakeCollection) Update(ctx context.Context, q types.Query, values types.Row) (types.Row, error) {
	f.record("update", q, values)
	if f.fromFn != nil {
		return f.fromFn("update", q, values)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.row, nil
}

func (f *fakeCollection) Delete(ctx context.Context, q types.Query) error {
	f.record("delete", q, nil)
	return f.err
}

// fakeHandle hands out one fakeCollection and remembers requested names.
type fakeHandle struct {
	coll    *fakeCollection
	fromErr error
	names   []string
}

func (h *fakeHandle) Attach(types.Config) error { return nil }
func (h *fakeHandle) Detach() error             { return nil }

func (h *fakeHandle) From(name string) (types.Collection, error) {
	h.names = append(h.names, name)
	if h.fromErr != nil {
		return nil, h.fromErr
	}
	return h.coll, nil
}

// newTestService wires a Service to a fake collection and captures its log.
func newTestService(coll *fakeCollection, opts Options) (*Service, *fakeHandle, *bytes.Buffer) {
	var logBuf bytes.Buffer
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(&logBuf, nil))
	}
	h := &fakeHandle{coll: coll}
	return New(h, opts), h, &logBuf
}
