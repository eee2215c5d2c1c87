package interfaces

import "rsi-tracker/src/models"

// -----------------------------------------------------------------------------
// IDataExchanger defines the interface for sharing data with UI clients.
// -----------------------------------------------------------------------------

type IDataExchanger interface {

	// -----------------------------------------------------------------------------

	// Broadcast pushes the latest state to connected listeners.
	Broadcast(state *models.MLatestData)

	// -----------------------------------------------------------------------------

	// Start the server.
	Start() error

	// -----------------------------------------------------------------------------

	// Stop the server gracefully.
	Stop() error
}
