// Package testutils holds shared fakes for the ClickHouse driver surface.
package testutils

import (
	"context"
	"sync"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// MockClickHouseConn fakes the subset of driver.Conn the service touches.
// Unset function fields fall through to recording no-ops.
type MockClickHouseConn struct {
	driver.Conn

	mu      sync.Mutex
	Batches []*MockBatch

	PrepareBatchFunc func(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	QueryFunc        func(ctx context.Context, query string, args ...interface{}) (driver.Rows, error)
	PingErr          error
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error) {
	if m.PrepareBatchFunc != nil {
		return m.PrepareBatchFunc(ctx, query, opts...)
	}
	batch := &MockBatch{Query: query}
	m.mu.Lock()
	m.Batches = append(m.Batches, batch)
	m.mu.Unlock()
	return batch, nil
}

func (m *MockClickHouseConn) Query(ctx context.Context, query string, args ...interface{}) (driver.Rows, error) {
	if m.QueryFunc != nil {
		return m.QueryFunc(ctx, query, args...)
	}
	return &EmptyRows{}, nil
}

func (m *MockClickHouseConn) Ping(ctx context.Context) error {
	return m.PingErr
}

// MockBatch records appended rows.
type MockBatch struct {
	driver.Batch

	Query    string
	Appended [][]interface{}
	Sent     bool

	AppendErr error
	SendErr   error
}

func (b *MockBatch) Append(v ...interface{}) error {
	if b.AppendErr != nil {
		return b.AppendErr
	}
	b.Appended = append(b.Appended, v)
	return nil
}

func (b *MockBatch) Send() error {
	if b.SendErr != nil {
		return b.SendErr
	}
	b.Sent = true
	return nil
}

// EmptyRows is a driver.Rows with no rows.
type EmptyRows struct {
	driver.Rows
}

func (r *EmptyRows) Next() bool   { return false }
func (r *EmptyRows) Close() error { return nil }
func (r *EmptyRows) Err() error   { return nil }
