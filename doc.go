// Package rowmap maps Go structs to and from delimited-text rows, driven by
// per-field column metadata.
//
// Basic Usage
//
//	type Person struct {
//	    ID        string    `csv:"id,order=A"`
//	    FirstName string    `csv:"First Name,order=C"`
//	    Birthday  time.Time `csv:"birthday,order=B,format=yyyyMMdd"`
//	}
//
//	m := rowmap.New()
//	w := csv.NewWriter(os.Stdout)
//	_ = m.WriteHeader(w, Person{})
//	_ = m.WriteMany(w, people)
//	w.Flush()
//
// # Column Metadata
//
// The struct tag (default "csv") holds `name,order=KEY,format=PATTERN`. Name
// and order key default to the Go field identifier. The format option consumes
// the rest of the tag so date patterns may contain commas. A tag of "-" skips
// the field, and untagged fields are not columns unless registered with
// RegisterColumn.
//
// Columns are ordered by ascending order key using plain string comparison.
// Two fields sharing an order key, explicit or defaulted, make the type
// unusable: every operation on it returns a *ConfigError wrapping
// ErrDuplicateOrderKey and no row is written.
//
// # Embedded Structs
//
// Embedded struct fields (including pointer-to-struct) are flattened. Fields
// declared on the outer type are collected before those of embedded types, but
// the final column order depends only on the order keys.
//
// # Time Fields
//
// time.Time, *time.Time and null.Time fields use the column format as a date
// pattern such as "yyyyMMdd" or "dd/MM/yyyy HH:mm:ss". Go layouts containing
// "2006" are accepted as-is. Fields without a format use the mapper's default
// time format, RFC 3339 unless configured.
//
// # Codecs
//
// RegisterCodec and RegisterCodecFor replace the built-in conversion of a field.
// Type-scoped codecs take precedence over global ones.
//
// # Diagnostics
//
// Per-field encode and decode failures are recovered: the column is left empty
// or the field keeps its default. Every recovered failure is emitted as a
// capitan event and handed to the WithDiagnostics callback. Row source and sink
// failures are reported the same way and are returned only with
// WithPropagateIOErrors.
//
// # Thread Safety
//
// The Mapper is safe for concurrent use. Internals use copy-on-write registries
// and cached layouts.
package rowmap
