package matcher

import (
	"context"

	pool "github.com/jolestar/go-commons-pool"

	"github.com/ava12/rulematch/grammar"
	"github.com/ava12/rulematch/internal/ints"
)

type memoKey struct {
	rule grammar.RuleID
	pos  int
}

// memo caches end offsets of rules per start offset for one message.
type memo struct {
	ends map[memoKey]*ints.Set
}

func newMemo() *memo {
	return &memo{ends: make(map[memoKey]*ints.Set)}
}

// Memo tables are per-message scratch, reused across messages to avoid
// rebuilding their maps.
type memoPool struct {
	opool *pool.ObjectPool
	ctx   context.Context
}

func newMemoPool() *memoPool {
	mp := &memoPool{ctx: context.Background()}
	factory := pool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return newMemo(), nil
		})
	config := pool.NewDefaultPoolConfig()
	config.MaxTotal = -1 // infinity
	config.BlockWhenExhausted = false
	mp.opool = pool.NewObjectPool(mp.ctx, factory, config)
	return mp
}

func (mp *memoPool) borrow() *memo {
	o, e := mp.opool.BorrowObject(mp.ctx)
	if e != nil {
		T().Errorf("cannot borrow memo table: %v", e)
		return newMemo()
	}
	return o.(*memo)
}

func (mp *memoPool) release(m *memo) {
	clear(m.ends)
	if e := mp.opool.ReturnObject(mp.ctx, m); e != nil {
		T().Errorf("cannot return memo table: %v", e)
	}
}
