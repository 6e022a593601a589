/*
Package catalog contains the game catalog: fetching it from the upstream games
API, holding the current in-memory snapshot, and the pure query pipeline that
turns the snapshot plus the caller's search, genre, scope, and ordering inputs
into the list to display.
*/
package catalog

// Game is one record of the upstream catalog. Records are immutable once
// fetched; the whole catalog is replaced on refresh rather than updated
// incrementally.
type Game struct {
	// ID is the unique, stable, server-assigned identifier.
	ID int64 `json:"id"`

	// Title is the display name of the game.
	Title string `json:"title"`

	// Thumbnail is the URL of the cover image. When the thumbnail mirror is
	// enabled this points at the mirror instead of the upstream CDN.
	Thumbnail string `json:"thumbnail"`

	// Genre is the upstream-assigned genre label, matched case-sensitively.
	Genre string `json:"genre"`
}
