// Package pipeline cleans the raw Olympic sources into the canonical
// athlete-event table that every analysis query reads from.
//
// The pipeline is an ordered sequence of pure, ownership-transferring
// transformations: each stage consumes the previous table and produces a
// new one, so no stage mutates shared state.
//
//	load -> join & prune -> discontinued-sport filter -> region patch ->
//	medal normalization -> invariant check
//
// Rows dropped by the inner join are not discarded silently: they are
// validated against the discontinued-sport assumption, and a violation
// surfaces as an INTEGRITY error. After the pipeline completes, every row
// has a non-empty region and a medal in {Gold, Silver, Bronze, None}.
// Age, height and weight keep their source missingness.
package pipeline
