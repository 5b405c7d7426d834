// Package diff computes structural differences between two JSON documents.
//
// # Overview
//
// [Diff] walks both documents together and reports every location it
// compares as a [Change] addressed by path:
//
//	$            the documents themselves
//	name         member of the root object
//	users[0].id  nested member
//	$[2]         element of a root array
//
// Each pair of values is classified by the first matching rule:
//
//  1. both null: unchanged
//  2. both absent: nothing reported
//  3. left null or absent: added
//  4. right null or absent: removed
//  5. different types: modified, without looking inside
//  6. equal scalars: unchanged, otherwise modified
//  7. arrays: compared index by index
//  8. objects: compared member by member
//
// Arrays are compared by position only. Moving an element produces a run of
// modified entries rather than a move.
//
// # Results
//
// [Compare] wraps the change list in a [Result] with [Stats]. The stats are
// computed over the complete list; [Result.Visible] filters unchanged entries
// for display without touching them.
//
// Paths are for display. Member names containing "." or "[" are not escaped.
package diff
