package columnlen_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/neganovalexey/ftindex/columnlen"
	"github.com/neganovalexey/ftindex/rowid"
)

func TestVectorAddAndGet(t *testing.T) {
	v := columnlen.New()
	v.Add(rowid.Pack(0, 1), 3)
	v.Add(rowid.Pack(0, 1), 2)
	require.Equal(t, uint32(5), v.Get(rowid.Pack(0, 1)))
	require.Equal(t, uint32(0), v.Get(rowid.Pack(0, 2)))
}

func TestVectorConcurrentAdd(t *testing.T) {
	v := columnlen.New()
	docid := rowid.Pack(0, 7)

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			v.Add(docid, 1)
		}()
	}
	wg.Wait()

	require.Equal(t, uint32(100), v.Get(docid))
	require.Equal(t, 1, v.Len())
}
