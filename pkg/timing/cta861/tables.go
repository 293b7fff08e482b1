// Package cta861 parses the CEA-861-G video format timing tables into
// canonical display mode records.
//
// The three embedded tables are copy-pasted text from CTA-861-G:
// Table 1 "Video Format Timings--Detailed Timing Information",
// Table 2 "Video Format Timings--Detailed Sync Information", and
// Table 3 "Video Formats--Video ID Code and Aspect Ratios". Each pass
// consumes one table; Table 1 creates the per-VIC records and Tables 2 and 3
// fill them in, so the passes must run in that order.
package cta861

import _ "embed"

// https://web.archive.org/web/20171201033424/https://standards.cta.tech/kwspub/published_docs/CTA-861-G_FINAL_revised_2017.pdf

//go:embed data/table1.txt
var table1Text string

//go:embed data/table2.txt
var table2Text string

//go:embed data/table3.txt
var table3Text string
