package rowmap

// RowWriter accepts rows of column text. *csv.Writer satisfies it.
type RowWriter interface {
	Write(row []string) error
	WriteAll(rows [][]string) error
}

// RowReader yields every remaining row of a source. *csv.Reader satisfies it.
type RowReader interface {
	ReadAll() ([][]string, error)
}

// flusher is implemented by buffered writers such as *csv.Writer.
type flusher interface {
	Flush()
	Error() error
}

// Rows is an in-memory RowReader and RowWriter.
type Rows [][]string

// Write appends a copy of row.
func (r *Rows) Write(row []string) error {
	*r = append(*r, append(make([]string, 0, len(row)), row...))
	return nil
}

// WriteAll appends copies of rows.
func (r *Rows) WriteAll(rows [][]string) error {
	for _, row := range rows {
		_ = r.Write(row)
	}
	return nil
}

// ReadAll returns a copy of all rows.
func (r *Rows) ReadAll() ([][]string, error) {
	out := make([][]string, len(*r))
	for i, row := range *r {
		out[i] = append(make([]string, 0, len(row)), row...)
	}
	return out, nil
}
