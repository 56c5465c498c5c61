package rowmap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSignalsDefined(t *testing.T) {
	signals := []any{
		SignalLayoutBuilt,
		SignalFieldEncodeFailed,
		SignalFieldDecodeFailed,
		SignalRecordSkipped,
		SignalReadFailed,
		SignalWriteFailed,
		SignalRowsWritten,
		SignalRowsRead,
	}
	for _, s := range signals {
		assert.NotNil(t, s)
	}
}

func TestEmitters(t *testing.T) {
	ctx := context.Background()
	m, diags := collect()

	assert.NotPanics(t, func() {
		emitLayoutBuilt(ctx, "rowmap.Worker", 8)
		emitRowsWritten(ctx, "rowmap.Worker", 2, time.Millisecond)
		emitRowsRead(ctx, "rowmap.Worker", 2, time.Millisecond)
		m.emitFieldFailed(ctx, &FieldError{Err: ErrEncode, Type: "rowmap.Worker", Field: "Level", Column: "Level", Cause: errors.New("x")})
		m.emitFieldFailed(ctx, &FieldError{Err: ErrDecode, Type: "rowmap.Worker", Field: "Level", Column: "Level", Row: 3, Cause: errors.New("x")})
		m.emitRecordSkipped(ctx, "rowmap.Worker", 1, errors.New("record 1 is nil"))
		m.emitIOFailed(ctx, &IOError{Err: ErrRead, Type: "rowmap.Worker", Cause: errors.New("eof")})
		m.emitIOFailed(ctx, &IOError{Err: ErrWrite, Type: "rowmap.Worker", Cause: errors.New("closed")})
	})

	var names []string
	for _, d := range *diags {
		names = append(names, d.Signal)
	}
	assert.Equal(t, []string{NameFieldEncodeFailed, NameFieldDecodeFailed, NameRecordSkipped, NameReadFailed, NameWriteFailed}, names)
}

func TestEmittersWithoutCallback(t *testing.T) {
	m := New()
	assert.NotPanics(t, func() {
		m.emitRecordSkipped(context.Background(), "rowmap.Worker", 0, errors.New("nil"))
	})
}

func TestErrorMessages(t *testing.T) {
	ce := &ConfigError{Err: ErrDuplicateOrderKey, Type: "rowmap.dupRecord", Field: "B", Detail: `"k"`}
	assert.Equal(t, `rowmap.dupRecord: duplicate order key "k" (field B)`, ce.Error())

	fe := &FieldError{Err: ErrDecode, Type: "rowmap.Worker", Field: "Level", Row: 2, Cause: errors.New("bad")}
	assert.Equal(t, "decode failed rowmap.Worker.Level (row 2): bad", fe.Error())

	re := &RowError{Err: ErrShortRow, Row: 4, Columns: 2, Want: 8}
	assert.Equal(t, "row shorter than layout: row 4 has 2 columns, want 8", re.Error())
}
