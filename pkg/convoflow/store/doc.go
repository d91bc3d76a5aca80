// Package store converts flow graphs to and from their persisted
// document form and talks to the storage collaborators.
//
// ToDocument and FromDocument are pure mappings between the in-memory
// Graph/Metadata and the wire Document. The Store interface covers the
// flow storage backend; HTTPStore speaks the backend's REST surface,
// SQLiteStore keeps documents in a local file, and MemoryStore backs
// tests. AgentStore is the separate collaborator used only to keep an
// agent's display name in sync with its flow name.
//
// No store is ever invoked implicitly: the designer calls Load and
// Create/Update only on explicit load and save commands.
package store
