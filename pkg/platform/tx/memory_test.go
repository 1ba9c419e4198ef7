package tx

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

type InMemorySuite struct {
	suite.Suite
	runner *InMemory
	ctx    context.Context
}

func (s *InMemorySuite) SetupTest() {
	s.runner = NewInMemory()
	s.ctx = context.Background()
}

func TestInMemorySuite(t *testing.T) {
	suite.Run(t, new(InMemorySuite))
}

func (s *InMemorySuite) TestRollback() {
	s.Run("undo steps replay in reverse on error", func() {
		var order []int
		state := 0
		err := s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			state = 1
			OnRollback(ctx, func() { order = append(order, 1); state = 0 })
			state = 2
			OnRollback(ctx, func() { order = append(order, 2); state = 1 })
			return errors.New("abort")
		})
		s.Require().EqualError(err, "abort")
		s.Equal(0, state)
		s.Equal([]int{2, 1}, order)
	})

	s.Run("undo steps are dropped on commit", func() {
		undone := false
		err := s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			OnRollback(ctx, func() { undone = true })
			return nil
		})
		s.Require().NoError(err)
		s.False(undone)
	})

	s.Run("panics roll back and release the lock", func() {
		undone := false
		s.Panics(func() {
			_ = s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
				OnRollback(ctx, func() { undone = true })
				panic("boom")
			})
		})
		s.True(undone)
		s.Require().NoError(s.runner.RunInTx(s.ctx, func(context.Context) error { return nil }))
	})
}

func (s *InMemorySuite) TestAfterCommit() {
	s.Run("hooks run only after a successful commit", func() {
		ran := false
		s.Require().NoError(s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func() { ran = true })
			s.False(ran)
			return nil
		}))
		s.True(ran)
	})

	s.Run("hooks are discarded on abort", func() {
		ran := false
		_ = s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func() { ran = true })
			return errors.New("abort")
		})
		s.False(ran)
	})

	s.Run("hooks see a finished transaction", func() {
		var captured context.Context
		s.Require().NoError(s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			AfterCommit(ctx, func() { captured = ctx })
			return nil
		}))
		s.Require().NotNil(captured)
		s.False(InTx(captured))
		// A write from the hook starts its own transaction instead of joining.
		undone := false
		err := s.runner.RunInTx(captured, func(ctx context.Context) error {
			OnRollback(ctx, func() { undone = true })
			return errors.New("abort")
		})
		s.Require().Error(err)
		s.True(undone)
	})

	s.Run("hooks run immediately outside a transaction", func() {
		ran := false
		AfterCommit(s.ctx, func() { ran = true })
		s.True(ran)
	})
}

func (s *InMemorySuite) TestNesting() {
	s.Run("nested RunInTx joins the outer transaction", func() {
		undone := false
		err := s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			s.True(InTx(ctx))
			s.Require().NoError(s.runner.RunInTx(ctx, func(inner context.Context) error {
				OnRollback(inner, func() { undone = true })
				return nil
			}))
			return errors.New("outer abort")
		})
		s.Require().Error(err)
		s.True(undone)
	})

	s.Run("view inside a transaction does not deadlock", func() {
		err := s.runner.RunInTx(s.ctx, func(ctx context.Context) error {
			return s.runner.View(ctx, func(context.Context) error { return nil })
		})
		s.Require().NoError(err)
	})

	s.Run("writes are refused inside a view", func() {
		err := s.runner.View(s.ctx, func(ctx context.Context) error {
			s.False(InTx(ctx))
			return s.runner.RunInTx(ctx, func(context.Context) error { return nil })
		})
		s.Require().ErrorIs(err, errWriteInView)
	})

	s.Run("cancelled context never starts", func() {
		ctx, cancel := context.WithCancel(s.ctx)
		cancel()
		called := false
		err := s.runner.RunInTx(ctx, func(context.Context) error { called = true; return nil })
		s.Require().ErrorIs(err, context.Canceled)
		s.False(called)
	})
}
