package rowmap

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signal names, also used as Diagnostic.Signal.
const (
	NameLayoutBuilt       = "rowmap.layout.built"
	NameFieldEncodeFailed = "rowmap.field.encode.failed"
	NameFieldDecodeFailed = "rowmap.field.decode.failed"
	NameRecordSkipped     = "rowmap.record.skipped"
	NameReadFailed        = "rowmap.read.failed"
	NameWriteFailed       = "rowmap.write.failed"
	NameRowsWritten       = "rowmap.rows.written"
	NameRowsRead          = "rowmap.rows.read"
)

// Signals for mapper events.
var (
	SignalLayoutBuilt       = capitan.NewSignal(NameLayoutBuilt, "Column layout resolved for a record type")
	SignalFieldEncodeFailed = capitan.NewSignal(NameFieldEncodeFailed, "Field could not be rendered, column left empty")
	SignalFieldDecodeFailed = capitan.NewSignal(NameFieldDecodeFailed, "Column text could not be assigned, field left at default")
	SignalRecordSkipped     = capitan.NewSignal(NameRecordSkipped, "Nil record skipped during write")
	SignalReadFailed        = capitan.NewSignal(NameReadFailed, "Row source failed")
	SignalWriteFailed       = capitan.NewSignal(NameWriteFailed, "Row sink failed")
	SignalRowsWritten       = capitan.NewSignal(NameRowsWritten, "Batch of rows written")
	SignalRowsRead          = capitan.NewSignal(NameRowsRead, "Batch of rows decoded into records")
)

// Keys for typed event data.
var (
	KeyTypeName = capitan.NewStringKey("type_name")
	KeyField    = capitan.NewStringKey("field")
	KeyColumn   = capitan.NewStringKey("column")
	KeyRow      = capitan.NewIntKey("row")
	KeyColumns  = capitan.NewIntKey("columns")
	KeyCount    = capitan.NewIntKey("count")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

// Diagnostic is a recovered failure handed to the WithDiagnostics callback.
// The same failure is also emitted as a capitan event.
type Diagnostic struct {
	Signal string // capitan signal name
	Err    error  // *FieldError, *IOError or a plain error for skipped records
}

func (m *Mapper) diagnose(name string, err error) {
	if m.options.Diagnostics != nil {
		m.options.Diagnostics(Diagnostic{Signal: name, Err: err})
	}
}

// emitLayoutBuilt emits an event when a layout is resolved for a type.
func emitLayoutBuilt(ctx context.Context, typeName string, columns int) {
	capitan.Emit(ctx, SignalLayoutBuilt,
		KeyTypeName.Field(typeName),
		KeyColumns.Field(columns),
	)
}

// emitFieldFailed emits an encode or decode failure for one field.
func (m *Mapper) emitFieldFailed(ctx context.Context, fe *FieldError) {
	signal, name := SignalFieldDecodeFailed, NameFieldDecodeFailed
	if fe.Err == ErrEncode {
		signal, name = SignalFieldEncodeFailed, NameFieldEncodeFailed
	}
	capitan.Error(ctx, signal,
		KeyTypeName.Field(fe.Type),
		KeyField.Field(fe.Field),
		KeyColumn.Field(fe.Column),
		KeyRow.Field(fe.Row),
		KeyError.Field(fe),
	)
	m.diagnose(name, fe)
}

// emitRecordSkipped emits an event for a nil record in a write batch.
func (m *Mapper) emitRecordSkipped(ctx context.Context, typeName string, row int, err error) {
	capitan.Error(ctx, SignalRecordSkipped,
		KeyTypeName.Field(typeName),
		KeyRow.Field(row),
		KeyError.Field(err),
	)
	m.diagnose(NameRecordSkipped, err)
}

// emitIOFailed emits a row source or sink failure.
func (m *Mapper) emitIOFailed(ctx context.Context, ioe *IOError) {
	signal, name := SignalReadFailed, NameReadFailed
	if ioe.Err == ErrWrite {
		signal, name = SignalWriteFailed, NameWriteFailed
	}
	capitan.Error(ctx, signal,
		KeyTypeName.Field(ioe.Type),
		KeyError.Field(ioe),
	)
	m.diagnose(name, ioe)
}

// emitRowsWritten emits an event when a batch has been handed to the sink.
func emitRowsWritten(ctx context.Context, typeName string, count int, duration time.Duration) {
	capitan.Emit(ctx, SignalRowsWritten,
		KeyTypeName.Field(typeName),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	)
}

// emitRowsRead emits an event when a batch of rows has been decoded.
func emitRowsRead(ctx context.Context, typeName string, count int, duration time.Duration) {
	capitan.Emit(ctx, SignalRowsRead,
		KeyTypeName.Field(typeName),
		KeyCount.Field(count),
		KeyDuration.Field(duration),
	)
}
