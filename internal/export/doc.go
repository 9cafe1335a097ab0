// Package export saves extraction results as the slide-titles.txt artifact.
//
// The Exporter builds the artifact and delegates persistence to a Saver, the
// platform save-as capability. FileSaver writes into a directory under an
// exclusive file lock; WriterSaver streams to an io.Writer.
package export
