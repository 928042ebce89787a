// Package simplepitch provides the presentation engine behind a promotional
// pitch deck: a catalog of brands and their ordered slides, a directory of
// doctors with brand assignments and saved playlists, a resolver that turns a
// slide selection into an ordered playlist, and a navigator that drives
// slide-by-slide playback.
//
// The Store is the single owner of catalog and directory state. Consumers read
// copies and submit whole-entity replacements through SaveBrand/SaveDoctor.
// Durability is handled by the persist subpackage, which subscribes to Store
// changes and writes debounced snapshots to pluggable Backend implementations
// found under storage/.
//
// Navigation
//
// A Navigator runs in one of two modes. Flat mode walks a pre-resolved
// Playlist with a single cursor. Hierarchical mode walks a list of brands with
// a (brand, slide) pair and carries across brand boundaries. The position
// counter shown to users resets per brand in hierarchical mode while traversal
// itself is continuous.
package simplepitch
