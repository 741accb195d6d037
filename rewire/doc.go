// Package rewire is the search engine of QNS: it re-orders, places, and
// routes a logical circuit onto a hardware profile to maximize the
// fidelity score from package fidelity.
//
// A search candidate is a complete circuit variant on physical qubit
// labels. Legal successor moves are:
//
//   - swapping one adjacent commuting gate pair (package circuit's
//     commutation predicate is the sole legality rule);
//   - relabeling the placement by one qubit transposition, allowed only
//     while the candidate has no inserted SWAPs;
//   - inserting one SWAP gate that moves an operand of the first
//     unroutable two-qubit gate one edge along the breadth-first
//     shortest path toward its partner.
//
// SWAP insertions are charged through the same estimator as any other
// two-qubit gate; no separate routing heuristic exists. The identity
// (unmodified) circuit is always a member of the initial candidate set,
// so the optimized score never falls below the original score.
//
// Two algorithms share this move set: exhaustive breadth-first
// enumeration for small variant spaces, and beam search (bounded-width
// frontier, best-ever tracking) for everything else. Frontier members
// are scored concurrently on a bounded worker pool; the tie-break order
// (score, fewer SWAPs, lower depth, earliest discovery) is a total
// order, so evaluation order never changes the result.
package rewire
