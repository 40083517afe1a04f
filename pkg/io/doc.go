// Package io reads photo collections and writes slideshows.
//
// # Input Format
//
// Inputs use the whitespace-separated competition format. The first token is
// the photo count N, followed by N records of orientation, tag count, and tag
// labels:
//
//	4
//	H 3 cat beach sun
//	V 2 selfie smile
//	V 2 garden selfie
//	H 2 garden cat
//
// Photos are identified by their position (0-based). Tag labels are interned
// in first-seen order through a [slides.Vocabulary], so "cat" above becomes
// tag 0. Line breaks carry no meaning; any whitespace separates tokens.
//
// Use [ImportInput] to read a file or [ReadInput] to read from any io.Reader.
// Malformed input is reported as an INVALID_FORMAT error naming the photo.
//
// # Submission Format
//
// Slideshows are written as the slide count followed by one line per slide
// holding its photo identities:
//
//	3
//	0
//	3
//	1 2
//
// [WriteSubmission] and [ReadSubmission] handle this format; [ReadSubmission]
// returns raw identity lists which assemble.FromIDs turns back into slides.
//
// # JSON
//
// [WriteJSON] emits a [Document] holding the score, the slides, and the
// per-transition scores, for tools that want more than the submission.
//
// # Concurrency
//
// Functions in this package hold no shared state. An [Input] is read-only
// after [ReadInput] returns.
package io
