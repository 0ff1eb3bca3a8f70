// Package column stands in for the host database's column representation: a
// column batch of text values with row ids. The engine never needs more than
// this from its collaborators.
package column

// Batch is a slice of text values for one column, addressed by row offset within
// some larger row range. Values may be empty for a NULL/absent cell; the engine
// tokenizes an empty string to zero tokens and simply contributes no postings for
// that row.
type Batch struct {
	Values []string
}

// Len returns the number of rows in the batch.
func (b Batch) Len() int {
	return len(b.Values)
}

// Slice returns the sub-batch [rowOffset, rowOffset+rowCount), the shape
// InvertColumn(column, row_offset, row_count, row_id_base) consumes.
func (b Batch) Slice(rowOffset, rowCount int) Batch {
	return Batch{Values: b.Values[rowOffset : rowOffset+rowCount]}
}
