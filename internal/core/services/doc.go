// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The indexer rebuilds the index from the library, the search service
// retrieves relevant chunks, and the answer and chat services turn
// retrieved context into grounded answers.
package services
