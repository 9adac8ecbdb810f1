// # csvgen: Typed CSV Generation for Go
//
// csvgen turns a sequence of typed records into CSV text. It discovers the simple fields of a record type once, writes a header row of field names, then streams one row per record with every value formatted and escaped according to an Options value.
//
// # Features
//
// - Explicit field registration through typed builders (`Int`, `String`, `DateTime`, `Optional*`, ...) or the `Describer` interface, with struct discovery as a fallback.
// - Closed value-kind model: integers, unsigned integers, booleans, floats, decimals, strings, enums, date/times with and without offset, durations and UUIDs, each optionally absent.
// - Configurable value separator, line separator, date/time layout, numeric pattern, forced quoting and trailing line ending policy.
// - Streaming writes over `iter.Seq`, constant memory per row, sink errors returned unchanged.
// - Prometheus metrics through the `metrics` package and zerolog debug logging.
//
// # Getting Started
//
//	gen := csvgen.New[Sample]()
//	err := gen.WriteSlice(samples, os.Stdout, csvgen.DefaultOptions())
//
// Escaping doubles backslashes and wraps values containing the separator or a double quote in quotes; embedded quotes are not doubled.
package csvgen
