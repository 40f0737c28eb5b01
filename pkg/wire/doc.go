// Package wire serializes workflow graphs into the version "1.0" JSON
// document consumed by the external execution engine, and parses such
// documents back into graphs.
//
// The document has three top-level keys: links (ordered
// {leftPinId, rightPinId} pairs), nodes (one record per node, in creation
// order), and the constant version string. Each node record carries kind,
// position, the non-empty pin arrays as {id, name} objects, and the
// kind-specific config fields merged flatly into the record. Pin types are
// not part of the wire format; the reader recovers them from the kind's
// pin template.
//
// Output is deterministic: serializing the same graph twice produces
// byte-identical documents.
package wire
