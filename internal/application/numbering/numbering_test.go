package numbering_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/application/numbering"
)

// fakeSequences contador en memoria por (clave, año).
type fakeSequences struct {
	values map[string]int64
}

func newFakeSequences() *fakeSequences {
	return &fakeSequences{values: make(map[string]int64)}
}

func seqKey(key string, year int) string {
	return key + "/" + time.Date(year, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006")
}

func (f *fakeSequences) Next(_ context.Context, key string, year int) (int64, error) {
	k := seqKey(key, year)
	f.values[k]++
	return f.values[k], nil
}

func (f *fakeSequences) Peek(_ context.Context, key string, year int) (int64, error) {
	return f.values[seqKey(key, year)] + 1, nil
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "00001/2026", numbering.Format(1, 2026))
	assert.Equal(t, "00042/2026", numbering.Format(42, 2026))
	assert.Equal(t, "99999/2026", numbering.Format(99999, 2026))
	// Por encima de 5 dígitos el número crece sin truncarse.
	assert.Equal(t, "123456/2026", numbering.Format(123456, 2026))
}

func TestNextNumber_ConsecutivoPorClave(t *testing.T) {
	seqs := newFakeSequences()
	now := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)

	first, err := numbering.NextNumber(context.Background(), seqs, numbering.KeyDeliveryNote, now)
	require.NoError(t, err)
	second, err := numbering.NextNumber(context.Background(), seqs, numbering.KeyDeliveryNote, now)
	require.NoError(t, err)

	assert.Equal(t, "00001/2026", first)
	assert.Equal(t, "00002/2026", second)

	// Otra clave arranca su propio consecutivo.
	other, err := numbering.NextNumber(context.Background(), seqs, numbering.KeyInvoice, now)
	require.NoError(t, err)
	assert.Equal(t, "00001/2026", other)
}

func TestNextNumber_ReiniciaPorAnio(t *testing.T) {
	seqs := newFakeSequences()

	dec := time.Date(2026, 12, 31, 23, 0, 0, 0, time.UTC)
	jan := time.Date(2027, 1, 1, 1, 0, 0, 0, time.UTC)

	n1, err := numbering.NextNumber(context.Background(), seqs, numbering.KeyPurchase, dec)
	require.NoError(t, err)
	n2, err := numbering.NextNumber(context.Background(), seqs, numbering.KeyPurchase, jan)
	require.NoError(t, err)

	assert.Equal(t, "00001/2026", n1)
	assert.Equal(t, "00001/2027", n2, "el contador de cada año arranca en 1")
}
