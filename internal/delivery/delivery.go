// Package delivery defines the contract every transport front-end of the
// application fulfils.
package delivery

import "context"

// Delivery is a running transport (HTTP today) serving the application.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
