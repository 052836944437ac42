// Package memory persists context journal entries for MCP clients, one
// JSON document per logical namespace under a configured root
// directory. Reads always succeed; writes replace the whole document
// atomically.
package memory
