package repository

import "context"

// Storage keys of the floor collections. They match the keys the browser
// client used for its local blobs so exported data can be imported as is.
const (
	KeyTables    = "gestor_mesas_pro_data"
	KeyCatalog   = "gestor_mesas_menu"
	KeyInventory = "gestor_mesas_inventory"
	KeyPurchases = "gestor_mesas_purchases"
)

// CollectionRepository stores whole collections as JSON documents under a fixed key
type CollectionRepository interface {
	// Get returns the stored payload, or nil and no error when the key was never written
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the payload stored under key
	Put(ctx context.Context, key string, payload []byte) error
}
