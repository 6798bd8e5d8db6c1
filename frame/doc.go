/*
Package frame holds the tabular type azfile reads and writes, with its codecs.

A Frame is a header plus string rows.  It is written as comma separated (csv) or tab separated ("table") text, or as
a gob payload (the "pickle" format) compressed with gzip, zstd or nothing.  Concat unions frames by rows, which is
how batched reads combine files.
*/
package frame
