// @focus: #sys { term }
// Package terminal is a low-level terminal rendering engine: a logical cell
// grid that client code mutates cell-by-cell, diffed each refresh against a
// snapshot of what the physical terminal already shows, emitting the minimal
// ANSI sequences with as few syscalls and bytes as possible.
//
// Features:
//   - Hierarchical dirty-region tracking (bounding rect + 8x8/32x32 tiles)
//   - Run coalescing with attribute and cursor-position deduplication
//   - Escape-sequence interning and bounded rendition caches
//   - Bounded color-pair allocation with graceful degradation
//   - Scatter-gather (writev) output batching with partial-write recovery
//
// This package bypasses terminfo/termcap entirely, emitting direct ANSI
// sequences. Target environments: Linux, macOS, BSDs with xterm-compatible
// terminals. The engine is single-threaded by design: all mutable state is
// owned by the render goroutine and hosts must serialize calls into it.
package terminal
