package store

import (
	"context"
	"errors"
	"testing"

	perr "todoapi/internal/platform/errors"

	"github.com/jackc/pgx/v5"
)

type fakeTag int64

func (f fakeTag) String() string      { return "UPDATE" }
func (f fakeTag) RowsAffected() int64 { return int64(f) }

type fakeRow struct {
	vals []any
	err  error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.vals[i].(int64)
		case *string:
			*p = r.vals[i].(string)
		default:
			return errors.New("unsupported scan target")
		}
	}
	return nil
}

type fakeRows struct {
	data [][]any
	idx  int
	err  error
}

func (r *fakeRows) Next() bool             { r.idx++; return r.idx <= len(r.data) }
func (r *fakeRows) Scan(dest ...any) error { return fakeRow{vals: r.data[r.idx-1]}.Scan(dest...) }
func (r *fakeRows) Err() error             { return r.err }
func (r *fakeRows) Close()                 {}

type fakeQuerier struct {
	execSQL []string
	tag     CommandTag
	execErr error
	rows    *fakeRows
	row     fakeRow
}

func (f *fakeQuerier) Exec(_ context.Context, sql string, _ ...any) (CommandTag, error) {
	f.execSQL = append(f.execSQL, sql)
	return f.tag, f.execErr
}

func (f *fakeQuerier) Query(context.Context, string, ...any) (Rows, error) {
	if f.rows == nil {
		return nil, errors.New("query failed")
	}
	return f.rows, nil
}

func (f *fakeQuerier) QueryRow(context.Context, string, ...any) Row { return f.row }

type item struct {
	ID   int64
	Text string
}

func scanItem(r Row) (item, error) {
	var it item
	err := r.Scan(&it.ID, &it.Text)
	return it, err
}

func TestScalar(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{vals: []any{int64(7)}}}
	got, err := Scalar[int64](context.Background(), q, "INSERT ... RETURNING id")
	if err != nil || got != 7 {
		t.Fatalf("Scalar = %d, %v", got, err)
	}
	q.row = fakeRow{err: errors.New("boom")}
	if _, err := Scalar[int64](context.Background(), q, "x"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestOne_NoRowsIsNotFound(t *testing.T) {
	q := &fakeQuerier{row: fakeRow{err: pgx.ErrNoRows}}
	_, err := One(context.Background(), q, scanItem, "SELECT")
	if !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	q.row = fakeRow{vals: []any{int64(1), "a"}}
	got, err := One(context.Background(), q, scanItem, "SELECT")
	if err != nil || got != (item{1, "a"}) {
		t.Fatalf("One = %+v, %v", got, err)
	}
}

func TestMany(t *testing.T) {
	q := &fakeQuerier{rows: &fakeRows{}}
	got, err := Many(context.Background(), q, scanItem, "SELECT")
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("empty result should be a non-nil empty slice, got %#v, %v", got, err)
	}

	q.rows = &fakeRows{data: [][]any{{int64(1), "a"}, {int64(2), "b"}}}
	got, err = Many(context.Background(), q, scanItem, "SELECT")
	if err != nil || len(got) != 2 || got[1] != (item{2, "b"}) {
		t.Fatalf("Many = %+v, %v", got, err)
	}

	q.rows = &fakeRows{err: errors.New("late")}
	if _, err := Many(context.Background(), q, scanItem, "SELECT"); err == nil {
		t.Fatalf("expected rows error")
	}

	q.rows = nil
	if _, err := Many(context.Background(), q, scanItem, "SELECT"); err == nil {
		t.Fatalf("expected query error")
	}
}

func TestAffected(t *testing.T) {
	q := &fakeQuerier{tag: fakeTag(3)}
	n, err := Affected(context.Background(), q, "DELETE")
	if err != nil || n != 3 {
		t.Fatalf("Affected = %d, %v", n, err)
	}
	q.execErr = errors.New("boom")
	if _, err := Affected(context.Background(), q, "DELETE"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestEnsureSchema(t *testing.T) {
	q := &fakeQuerier{tag: fakeTag(0)}
	if err := EnsureSchema(context.Background(), q, "CREATE A", "CREATE B"); err != nil {
		t.Fatal(err)
	}
	if len(q.execSQL) != 2 || q.execSQL[1] != "CREATE B" {
		t.Fatalf("statements = %v", q.execSQL)
	}
	q.execErr = errors.New("denied")
	if err := EnsureSchema(context.Background(), q, "CREATE C"); err == nil {
		t.Fatalf("expected error")
	}
}
