// Package dataset materializes the two raw tabular sources, athlete-event
// records and NOC region mappings, into in-memory slices of domain structs.
//
// The loader binds columns by header name rather than position, accepts CSV
// and XLSX sources, and performs no transformation beyond type binding:
// cleaning belongs to the pipeline package. A missing file, an unreadable
// file or a missing required column is a fatal LOAD error; a malformed data
// row is logged and skipped.
package dataset
