package ledger

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordLastWriteWins(t *testing.T) {
	l := New()
	require.NoError(t, l.Record(2, true))
	require.NoError(t, l.Record(0, true))
	require.NoError(t, l.Record(2, false))

	assert.Equal(t, 2, l.Len())
	checked, ok := l.Get(2)
	assert.True(t, ok)
	assert.False(t, checked)

	_, ok = l.Get(1)
	assert.False(t, ok)

	assert.Equal(t, []Entry{
		{CheckboxIndex: 0, NewChecked: true},
		{CheckboxIndex: 2, NewChecked: false},
	}, l.Entries())
}

func TestRecordRejectsNegativeIndex(t *testing.T) {
	l := New()
	assert.ErrorIs(t, l.Record(-1, true), ErrNegativeIndex)
	assert.Equal(t, 0, l.Len())
}

func TestSnapshotIsACopy(t *testing.T) {
	l := New()
	require.NoError(t, l.Record(1, true))
	snap := l.Snapshot()
	snap[5] = true
	assert.Equal(t, map[int]bool{1: true}, l.Snapshot())
}

func TestReset(t *testing.T) {
	l := New()
	require.NoError(t, l.Record(1, true))
	l.Reset()
	assert.Equal(t, 0, l.Len())
	assert.Empty(t, l.Entries())
}

func TestFromSnapshot(t *testing.T) {
	l, err := FromSnapshot(map[int]bool{3: true, 1: false})
	require.NoError(t, err)
	assert.Equal(t, map[int]bool{3: true, 1: false}, l.Snapshot())

	_, err = FromSnapshot(map[int]bool{-2: true})
	assert.ErrorIs(t, err, ErrNegativeIndex)
}

func TestConcurrentRecords(t *testing.T) {
	l := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = l.Record(i%10, i%2 == 0)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 10, l.Len())
}
