// Package analytics implements the aggregation query layer over the
// canonical athlete-event table produced by the pipeline.
//
// Every query is a read-only pure function over an immutable snapshot:
// the Analyzer never mutates the table it was constructed with, and two
// calls with the same arguments return equal results. Grouped results
// use left-join semantics — a category that is absent for a present key
// counts as zero, not as unknown — so single-gender sports and games
// with no medals still appear with explicit zero counts.
//
// File layout:
//
//   - types.go: result row shapes shared by the exporter and HTTP layer
//   - participation.go: column counts, per-games gender counts and ratios
//   - sports.go: per-sport gender balance, event and medal counts
//   - nations.go: medal table and nation participation grid
//   - distribution.go: age/height/weight frequency tables
//   - correlation.go: Pearson correlation over paired series
package analytics
