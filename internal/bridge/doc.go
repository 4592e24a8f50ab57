// Package bridge is the Matrix channel adapter.
//
// It is the only package that knows about the transport: inbound room
// messages are deduplicated, filtered, and normalized into engine events
// (/shop browses, /order N selects, /cancel aborts, anything else is a text
// reply), and the engine's outbound actions are rendered back into the room
// as plain or Markdown-formatted messages. The operator notifier shares the
// same client and posts order summaries to the configured operator room.
package bridge
