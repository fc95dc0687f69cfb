package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mesh-intelligence/foodlog/pkg/types"
)

// Media types and preferences understood by PostgREST.
const (
	mediaJSON        = "application/json"
	mediaSingleJSON  = "application/vnd.pgrst.object+json"
	preferReturnRep  = "return=representation"
	preferReturnNone = "return=minimal"
)

// Compile-time interface check.
var _ types.Collection = (*collection)(nil)

// collection issues one HTTP request per operation against
// /rest/v1/<name>.
type collection struct {
	backend  *Backend
	name     string
	endpoint string
}

// request describes a single PostgREST call.
type request struct {
	method string
	params url.Values
	body   any
	accept string
	prefer string
}

// Select fetches all matching rows.
func (c *collection) Select(ctx context.Context, q types.Query) ([]types.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	params := encodeQuery(q)
	params.Set("select", "*")

	var rows []types.Row
	err := c.do(ctx, request{
		method: http.MethodGet,
		params: params,
		accept: mediaJSON,
	}, &rows)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []types.Row{}
	}
	return rows, nil
}

// Insert posts a one-element array and asks for the inserted row back as a
// single object, so PostgREST rejects anything but exactly one row.
func (c *collection) Insert(ctx context.Context, row types.Row) (types.Row, error) {
	params := url.Values{}
	params.Set("select", "*")

	var out types.Row
	err := c.do(ctx, request{
		method: http.MethodPost,
		params: params,
		body:   []types.Row{row},
		accept: mediaSingleJSON,
		prefer: preferReturnRep,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update patches the single matching row. Zero or several matches make
// PostgREST answer 406 and roll the statement back.
func (c *collection) Update(ctx context.Context, q types.Query, values types.Row) (types.Row, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	params := encodeQuery(q)
	params.Set("select", "*")

	var out types.Row
	err := c.do(ctx, request{
		method: http.MethodPatch,
		params: params,
		body:   values,
		accept: mediaSingleJSON,
		prefer: preferReturnRep,
	}, &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes all matching rows.
func (c *collection) Delete(ctx context.Context, q types.Query) error {
	if err := q.Validate(); err != nil {
		return err
	}
	return c.do(ctx, request{
		method: http.MethodDelete,
		params: encodeQuery(q),
		accept: mediaJSON,
		prefer: preferReturnNone,
	}, nil)
}

// do sends r and decodes a successful response body into dest (if non-nil).
// Responses with status >= 400 become *APIError.
func (c *collection) do(ctx context.Context, r request, dest any) error {
	endpoint := c.endpoint
	if len(r.params) > 0 {
		endpoint += "?" + r.params.Encode()
	}

	var body io.Reader
	if r.body != nil {
		b, err := json.Marshal(r.body)
		if err != nil {
			return fmt.Errorf("encoding %s body: %w", c.name, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, r.method, endpoint, body)
	if err != nil {
		return fmt.Errorf("building %s request: %w", c.name, err)
	}
	c.backend.setHeaders(req)
	req.Header.Set("Accept", r.accept)
	if r.body != nil {
		req.Header.Set("Content-Type", mediaJSON)
	}
	if r.prefer != "" {
		req.Header.Set("Prefer", r.prefer)
	}

	resp, err := c.backend.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeAPIError(resp)
	}
	if dest == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	// Numbers stay json.Number so int8 ids keep every digit.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err := dec.Decode(dest); err != nil {
		return fmt.Errorf("decoding %s response: %w", c.name, err)
	}
	return nil
}
