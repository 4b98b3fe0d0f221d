// Package yxdbfile composes the header, schema, block stream and block
// index codecs into the top-level file format: Open decodes a file's
// header and schema eagerly and returns a pull-based record stream;
// Create buffers the schema and block stream in memory so the header's
// pointer fields can be computed before it is written.
package yxdbfile
