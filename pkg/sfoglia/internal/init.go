// Package internal contains the core infrastructure for the sfoglia transition
// framework. This includes SDL initialization, theming, font loading, and the
// overlay rasterizer. Types and functions in this package are not part of the
// public API.
package internal
