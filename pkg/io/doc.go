// Package io reads and writes graphs in the plain text CSR format and in a
// JSON envelope.
//
// # Text Format
//
// The text format is a whitespace-separated stream of integers:
//
//	n
//	offsets[1] ... offsets[n]
//	adjacency[0] ... adjacency[offsets[n]-1]
//
// offsets[0] is always 0 and is not written. [WriteGraph] puts one number per
// line, but [ReadGraph] accepts any whitespace, so a hand-written file can
// keep each vertex's list on one line:
//
//	3
//	1 3 4
//	1
//	0 2
//	1
//
// Vertex coordinates, when present, follow as 3n floating point numbers
// (x y z per vertex). [ReadGraph] only looks for them when
// [Options.Coordinates] is set; [WriteCoordinates] writes them in the same
// layout so that coordinates can live in a separate file.
//
// # JSON Format
//
// [ReadJSON] and [WriteJSON] use the same arrays wrapped in an object:
//
//	{
//	  "offsets": [0, 1, 3, 4],
//	  "adjacency": [1, 0, 2, 1],
//	  "coordinates": [[0, 0, 0], [1, 0, 0], [2, 0, 0]]
//	}
//
// This is the body format of the HTTP API and the format chosen by
// [ReadGraphFile] for paths ending in ".json".
//
// # Errors
//
// Malformed input returns INVALID_FORMAT; structurally invalid graphs return
// INVALID_GRAPH from [csr.New]; a missing file returns FILE_NOT_FOUND.
// Readers never return a partial graph.
package io
