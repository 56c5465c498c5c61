package rowmap

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapper_ConcurrentUse(t *testing.T) {
	m := New()
	workers := sampleWorkers()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%8 == 0 {
				m.RegisterCodec("Unused", Codec{})
			}
			var rows Rows
			if err := m.WriteMany(&rows, workers); err != nil {
				errs <- err
				return
			}
			got, err := ReadAll[Worker](m, &rows, false)
			if err != nil {
				errs <- err
				return
			}
			if len(got) != len(workers) || got[1].LastName != "Turing" {
				errs <- assert.AnError
			}
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}
}
