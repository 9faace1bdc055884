// Package cli implements the external interfaces of §6: a file loader,
// coloured per-query output, --visualize trace dumps, and the
// interactive REPL. None of this is part of the core (§1 explicitly
// scopes the command-line surface, the shell, file loading, coloured
// output and warnings formatting out of the engine); it consumes
// engine, engine/parser and engine/resolve purely through their
// exported entry points.
package cli
