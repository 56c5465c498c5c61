package rowmap

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerics_WriteAndReadAll(t *testing.T) {
	m := New()
	var rows Rows
	require.NoError(t, WriteHeaderOf[Worker](m, &rows))
	require.NoError(t, Write(m, &rows, sampleWorkers()))
	require.Len(t, rows, 3)

	got, err := ReadAll[Worker](m, &rows, true)
	require.NoError(t, err)
	assert.Equal(t, sampleWorkers(), got)

	ptrs, err := ReadAll[*Worker](m, &rows, true)
	require.NoError(t, err)
	require.Len(t, ptrs, 2)
	assert.Equal(t, "Turing", ptrs[1].LastName)
}

func TestGenerics_HeaderOf(t *testing.T) {
	header, err := HeaderOf[Worker](New())
	require.NoError(t, err)
	assert.Equal(t, workerHeader, header)

	header, err = HeaderOf[*Person](New())
	require.NoError(t, err)
	assert.Equal(t, workerHeader[:4], header)

	_, err = HeaderOf[dupRecord](New())
	assert.True(t, errors.Is(err, ErrDuplicateOrderKey))
}

func TestGenerics_Make(t *testing.T) {
	p, err := Make[Person](New(), []string{"9", "20000101", "Edsger", "Dijkstra"})
	require.NoError(t, err)
	assert.Equal(t, "Dijkstra", p.LastName)
	assert.Equal(t, 2000, p.Birthday.Year())

	_, err = Make[Person](New(), []string{"9"})
	assert.True(t, errors.Is(err, ErrShortRow))
}

func TestGenerics_WriteEmpty(t *testing.T) {
	var rows Rows
	require.NoError(t, Write[Worker](New(), &rows, nil))
	assert.Empty(t, rows)
}
