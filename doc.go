// Package tahti contains the project/timeline data model for a multi-track
// music and chiptune composition tool: projects, tracks, clips with their
// four payload variants, the mixing/routing descriptors, and the pure
// tick/time conversions. The model types are plain values with deep Copy
// methods; all mutation goes through the engine package, which owns the one
// live project and exposes the command surface on top of it.
package tahti
