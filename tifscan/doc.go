// Package tifscan tokenizes source text written in the Tiferet command
// dialect. The engine turns one text unit into an ordered, positioned
// token stream for downstream consumers:
//   - Artifact comments (#, # *, # **, # ***) classified by severity, with
//     reserved sub-cases for the imports opener and import groups.
//   - Domain idiom compounds spanning whole call shapes: self.verify(,
//     self.verify_parameter(, service calls ending in _service, factory
//     .new( invocations, a.const.* references, and parameters_required
//     decorators.
//   - Structural keywords, docstrings, comments, host-language reserved
//     words, identifiers, literals, punctuation, and newline runs.
//
// Disambiguation is longest-match with a fixed priority tie-break, so
// idiom compounds never fragment into generic tokens. The engine never
// fails: unmatched characters become single-rune UNKNOWN tokens and the
// scan continues. The pattern table is immutable and shared; each call
// owns its own scan state, so concurrent scans need no locking.
//
// ExtractBlocks, Analyze, and WriteJSON cover the collaborator surface:
// slicing artifact blocks from a file, aggregating domain metrics, and
// emitting results.
package tifscan
