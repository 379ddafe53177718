// Package memory provides in-process implementations of the driven stores.
// They back tests and the "memory" credential backend; nothing survives a
// restart.
package memory
