package store

import (
	"context"
	"errors"
	"testing"
)

type pingSeam struct {
	fakeRowQuerier
	pingErr error
}

func (p *pingSeam) Ping(context.Context) error { return p.pingErr }

func (p *pingSeam) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return fn(&p.fakeRowQuerier)
}

func TestGuard_NilAndEmpty(t *testing.T) {
	t.Parallel()

	var s *Store
	if err := s.Guard(context.Background()); err == nil {
		t.Fatalf("nil store should not pass guard")
	}

	empty := &Store{}
	if err := empty.Guard(context.Background()); err != nil {
		t.Fatalf("empty store guard: %v", err)
	}
}

func TestGuard_ReportsPGFailure(t *testing.T) {
	t.Parallel()

	boom := errors.New("down")
	s := &Store{PG: &pingSeam{pingErr: boom}}
	if err := s.Guard(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("guard should surface ping error, got %v", err)
	}

	ok := &Store{PG: &pingSeam{}}
	if err := ok.Guard(context.Background()); err != nil {
		t.Fatalf("healthy pg guard: %v", err)
	}
}

func TestClose_IgnoresNilBackends(t *testing.T) {
	t.Parallel()

	s := &Store{}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("close empty store: %v", err)
	}
}
