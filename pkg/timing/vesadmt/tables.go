// Package vesadmt parses the VESA Display Monitor Timing parameter blocks
// into canonical display mode records.
//
// The embedded text is the "Detailed Timing Parameters" pages of the VESA
// DMT standard, one key/value block per timing. Unlike the CEA-861 tables,
// each block is self-contained: a record is fully populated in one pass and
// the DMT collection keeps the block order of the source document.
package vesadmt

import _ "embed"

// Mode timing pages extracted to text with Tabula.

//go:embed data/dmt.txt
var dmtText string
