// Package sequence orders photos greedily so that consecutive photos share
// as many tags as the similarity metric rewards.
//
// # Algorithm
//
// [Sequence] shuffles the input with a seeded generator and places the first
// photo. It then repeats one step until no candidates remain: among the
// remaining photos, pick the one with the highest [slides.Similarity] to the
// last placed photo, remove it from the candidate pool and append it.
//
// Vertical photos must end up in consecutive pairs, so the loop is driven by
// a two-state [Mode]:
//
//   - [FreeChoice]: every remaining photo is eligible.
//   - [SeekingPartner]: a vertical photo was just placed without a partner;
//     only vertical photos are eligible.
//
// Placing a vertical photo in FreeChoice switches to SeekingPartner, and
// placing the partner switches back. Ties between equally good candidates go
// to the first one in pool order.
//
// # Parallelism
//
// Each step is inherently sequential, but the search for the best candidate
// is a map-reduce over the pool. When the pool holds at least
// Options.ParallelThreshold photos the search is split across Options.Workers
// goroutines; the reduction keeps the same tie-break, so the output does not
// depend on the worker count.
//
// # Progress
//
// The search is O(n²) overall and can run for minutes on large inputs.
// Options.Reporter receives a [Progress] every Options.ReportEvery steps.
// Reporting is a side channel and never changes the ordering.
package sequence
