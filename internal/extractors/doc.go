// Package extractors provides implementations of the Extractor interface
// for the file formats found in a document library. Each extractor knows
// how to pull text content out of files with specific extensions.
//
// Extractors are registered with the Registry at startup.
package extractors
