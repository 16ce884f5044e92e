// Package basket implements tote's cart and wishlist state, including the
// reconciliation between local and server-persisted collections.
//
// # Overview
//
// The storefront is usable before login: cart and wishlist live in durable
// local snapshots scoped to this installation, not to a user. Once the user
// authenticates, the same collections also exist server-side, mutated from
// any device they have logged in on. This package owns both halves of that
// split: the mutation gateways every user action flows through, and the
// one-shot reconciler that merges the two sides at login.
//
// # Mutation Gateways
//
// Cart and Wishlist are the only writers of the local snapshots. Every
// operation follows the same two-phase contract:
//
//  1. Commit the change to the in-memory collection and persist the
//     snapshot, synchronously. This phase cannot be rejected; the local
//     state is the source of truth for the running session.
//  2. When authenticated, mirror the same operation to the remote
//     collection. Mirror failures are logged and swallowed: they never
//     propagate to the caller and never roll back phase 1. The worst case
//     is a temporarily stale remote mirror, never a lost local entry.
//
// This asymmetry is deliberate. The alternative (block the UI on the remote
// round-trip, or roll back on failure) would make a flaky network delete
// items the user just added.
//
// Invariants enforced by the gateways:
//
//   - At most one record per product ID in any collection.
//   - Cart quantities are always >= 1. UpdateQuantity with a smaller value
//     is a no-op; Remove is the only way to drop a line.
//   - Count and Total are computed fresh from the snapshot on every read,
//     never cached, so they always agree with the last mutation.
//
// # Reconciliation
//
// Reconcile runs when the session reports an authenticated identity and the
// sync flag is still unset. The algorithm:
//
//  1. Fetch the remote collection.
//  2. If it is non-empty, fold it into the local snapshot: quantity
//     conflicts take max(local, remote), remote-only items are inserted.
//     Persist the merged result, then push it back with a sequential
//     clear-then-add so the merged local state becomes the source of truth
//     going forward.
//  3. If the remote side is empty and the local side is not, push the local
//     items (no clear needed).
//  4. Either way, set the sync flag once the attempt settles.
//
// The flag is process-wide and never resets, so reconciliation happens at
// most once per run even across logout/login. Setting it only after the
// attempt settles means a crash before completion retries on next start;
// the in-flight window is covered by a separate guard engaged before the
// fetch, so concurrent triggers cannot double-run the merge.
//
// Known weaknesses, accepted: a crash mid-push leaves a partial remote
// collection until the next session's reconciliation, and a local mutation
// racing an in-flight reconciliation can be missing from the pushed
// snapshot. Neither loses local data.
//
// # Collaborators
//
// The gateways depend on three narrow seams: a localstore.Dir for snapshot
// persistence, a CartRemote/WishlistRemote for the server mirror
// (implemented by shopapi.Client), and an AuthSignal (implemented by
// session.Session). Tests substitute fakes for the remote and the signal.
package basket
