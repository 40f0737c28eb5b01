// Package workflow builds typed directed workflow graphs for the state
// execution engine.
//
// A Graph owns nodes and links. Each node carries two ordered pin arrays
// (inputs and outputs) plus a kind-specific configuration struct, and each
// link joins exactly one output-array pin to one input-array pin. Nodes are
// created through per-kind factory methods on Graph; links are created
// through [Graph.LinkPins], which enforces all graph invariants.
//
// # Pin direction convention
//
// The wire format encodes every link as an ordered (left, right) pin-id
// pair where the left pin always lives in some node's output array and the
// right pin in some node's input array. This holds for both connection
// roles the engine distinguishes:
//
//   - data links, where the producer naturally exposes an output pin, and
//   - execution links, where the triggering node models its trigger as an
//     input pin while the triggered action exposes an output pin.
//
// [Graph.LinkPins] therefore resolves pins by name on both nodes and
// orients the pair itself; the caller's argument order never changes the
// serialized direction.
//
// Construction is monotonic: there is no delete operation, and a failed
// link attempt leaves the graph untouched. A Graph is not safe for
// concurrent use.
package workflow
