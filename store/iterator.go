package store

import (
	"bytes"
	"sync"

	"github.com/google/btree"

	"github.com/CallMeGwei/b9labs-remittance/errors"
)

// ----------------------------------------------------
// From btree items to Iterator

type btreeIter struct {
	data    btree.Item
	hasMore bool
	read    <-chan btree.Item
	stop    chan<- struct{}
	once    sync.Once
}

// source marks where the current item comes from
type source int32

const (
	us source = iota
	parent
	both
	none
)

func ascendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Ascend(insert)
		} else if start == nil { // end != nil
			bt.AscendLessThan(bkey{end}, insert)
		} else if end == nil { // start != nil
			bt.AscendGreaterOrEqual(bkey{start}, insert)
		} else { // both != nil
			bt.AscendRange(bkey{start}, bkey{end}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func descendBtree(bt *btree.BTree, start, end []byte) *btreeIter {
	read := make(chan btree.Item)
	// ensure we never block when we call close()
	stop := make(chan struct{}, 1)
	iter := &btreeIter{
		read: read,
		stop: stop,
	}

	insert := func(item btree.Item) bool {
		select {
		case read <- item:
			return true
		case <-stop:
			close(read)
			return false
		}
	}

	go func() {
		if start == nil && end == nil {
			bt.Descend(insert)
		} else if start == nil { // end != nil
			bt.DescendLessOrEqual(bkeyLess{end}, insert)
		} else if end == nil { // start != nil
			bt.DescendGreaterThan(bkeyLess{start}, insert)
		} else { // both != nil
			bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
		}
		close(read)
	}()

	iter.next()
	return iter
}

func (b *btreeIter) wrap(parent Iterator, reverse bool) *itemIter {
	return &itemIter{
		wrap:    b,
		parent:  newPeekIter(parent),
		reverse: reverse,
	}
}

func (b *btreeIter) next() {
	b.data, b.hasMore = <-b.read
}

func (b *btreeIter) close() {
	b.once.Do(func() {
		b.stop <- struct{}{}
	})
}

// get requires this is valid, gets what we are pointing at
func (b *btreeIter) get() keyer {
	return b.data.(keyer)
}

func (b *btreeIter) valid() bool {
	return b.hasMore
}

// peekIter buffers one item of the wrapped iterator so we can compare keys
// before consuming.
type peekIter struct {
	iter       Iterator
	key, value []byte
	done       bool
	err        error
}

func newPeekIter(iter Iterator) *peekIter {
	p := &peekIter{iter: iter}
	p.advance()
	return p
}

func (p *peekIter) advance() {
	key, value, err := p.iter.Next()
	switch {
	case err == nil:
		p.key, p.value = key, value
	case errors.ErrIteratorDone.Is(err):
		p.done = true
		p.key, p.value = nil, nil
	default:
		p.done = true
		p.err = err
	}
}

func (p *peekIter) valid() bool {
	return !p.done
}

// itemIter combines btree entries with those of the parent iterator, taking
// into consideration overwrites and deletes.
type itemIter struct {
	wrap    *btreeIter
	parent  *peekIter
	reverse bool
}

var _ Iterator = (*itemIter)(nil)

// Next returns the next key/value pair in the merged iteration, skipping
// entries deleted in the cache layer. It returns ErrIteratorDone when both
// sources are exhausted.
func (i *itemIter) Next() ([]byte, []byte, error) {
	for {
		if err := i.parent.err; err != nil {
			return nil, nil, err
		}
		switch i.firstKey() {
		case none:
			return nil, nil, errors.ErrIteratorDone
		case parent:
			key, value := i.parent.key, i.parent.value
			i.parent.advance()
			return key, value, nil
		case us, both:
			item := i.wrap.get()
			i.wrap.next()
			// if parent had the same key, it is overwritten
			if i.firstKeyWas(item.Key()) {
				i.parent.advance()
			}
			if set, ok := item.(setItem); ok {
				return set.Key(), set.value, nil
			}
			// deleted in the cache layer, move on
		}
	}
}

// firstKeyWas returns true if the parent currently points at the given key.
func (i *itemIter) firstKeyWas(key []byte) bool {
	return i.parent.valid() && bytes.Equal(i.parent.key, key)
}

// Release releases both source iterators.
func (i *itemIter) Release() {
	i.parent.iter.Release()
	i.wrap.close()
}

// firstKey selects the source with the lowest key, if any.
func (i *itemIter) firstKey() source {
	// if only one or none is valid, it is clear which to use
	if !i.parent.valid() {
		if !i.wrap.valid() {
			return none
		}
		return us
	} else if !i.wrap.valid() {
		return parent
	}

	// both are valid... compare keys....
	cmp := bytes.Compare(i.parent.key, i.wrap.get().Key())
	if i.reverse {
		cmp = -cmp
	}
	if cmp < 0 {
		return parent
	} else if cmp > 0 {
		return us
	}
	return both
}
