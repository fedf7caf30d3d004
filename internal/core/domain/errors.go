package domain

import "go.trai.ch/zerr"

var (
	// ErrOwnershipConflict is returned when a plugin tries to claim a node type
	// that is already owned by a different plugin.
	ErrOwnershipConflict = zerr.New("node type is owned by another plugin")

	// ErrOwnershipViolation is returned when a plugin mutates or deletes a node it does not own.
	ErrOwnershipViolation = zerr.New("nodes can only be updated by their owner")

	// ErrMalformedIngestionLine is returned when a streamed ingestion line cannot be applied.
	ErrMalformedIngestionLine = zerr.New("malformed ingestion line")

	// ErrIngestionStreamFailed is returned when the ingestion stream cannot be opened or read.
	ErrIngestionStreamFailed = zerr.New("ingestion stream failed")

	// ErrUnsupportedIngestionScheme is returned when the ingestion URL scheme is not http(s) or ws(s).
	ErrUnsupportedIngestionScheme = zerr.New("unsupported ingestion url scheme")

	// ErrInvalidNode is returned when a node fails validation.
	ErrInvalidNode = zerr.New("invalid node")

	// ErrPluginRequired is returned when a plugin-attributed action has no plugin.
	ErrPluginRequired = zerr.New("plugin is required")

	// ErrUnknownPlugin is returned when a configured plugin has no registered implementation.
	ErrUnknownPlugin = zerr.New("unknown plugin")

	// ErrInvalidPluginOptions is returned when a plugin's options cannot be decoded.
	ErrInvalidPluginOptions = zerr.New("invalid plugin options")

	// ErrSourcingFailed is returned when a sourcing cycle fails.
	ErrSourcingFailed = zerr.New("sourcing failed")

	// ErrHookFailed is returned when a plugin's lifecycle hook returns an error.
	ErrHookFailed = zerr.New("plugin hook failed")

	// ErrStoreOpenFailed is returned when the node store cannot be opened.
	ErrStoreOpenFailed = zerr.New("failed to open node store")

	// ErrStoreReadFailed is returned when a node cannot be read from the store.
	ErrStoreReadFailed = zerr.New("failed to read node")

	// ErrStoreWriteFailed is returned when a node cannot be written to the store.
	ErrStoreWriteFailed = zerr.New("failed to write node")

	// ErrStoreUnmarshalFailed is returned when a stored node cannot be decoded.
	ErrStoreUnmarshalFailed = zerr.New("failed to unmarshal node")

	// ErrStoreMarshalFailed is returned when a node cannot be encoded for storage.
	ErrStoreMarshalFailed = zerr.New("failed to marshal node")

	// ErrUnknownStoreDriver is returned when the configured store driver is not supported.
	ErrUnknownStoreDriver = zerr.New("unknown store driver")

	// ErrConfigReadFailed is returned when the config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the config file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrConfigInvalid is returned when the config fails validation.
	ErrConfigInvalid = zerr.New("invalid configuration")

	// ErrSnapshotWriteFailed is returned when a node graph snapshot cannot be written.
	ErrSnapshotWriteFailed = zerr.New("failed to write snapshot")

	// ErrServerFailed is returned when the develop server stops unexpectedly.
	ErrServerFailed = zerr.New("develop server failed")

	// ErrCommandFailed is returned when an exec source command exits with an error.
	ErrCommandFailed = zerr.New("command failed")
)
