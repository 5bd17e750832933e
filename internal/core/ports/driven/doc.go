// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - DocumentLibrary: Discovers files in the library tree
//   - Extractor: Pulls text out of one file type
//   - ExtractorRegistry: Selects the extractor for a file
//   - PostProcessorPipeline: Cleans and chunks extracted text
//   - EmbeddingService: Generates vector embeddings
//   - VectorIndex: Stores and searches embeddings (chromem)
//   - DocumentStore: Document and chunk persistence (SQLite)
//   - IndexStateStore: Index generation and refresh state
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the affected feature degrades gracefully:
//
//   - LLMService: Answer generation. Without it, retrieval still works
//     (`docent search`), but questions cannot be answered.
//   - PromptStore: Custom prompt templates. Without it, built-in
//     defaults are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or extractor package
package driven
