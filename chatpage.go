// Package chatpage turns web pages into clean, citable article text that can
// be handed to a chat model.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, trafilatura/). The
// readability/ package holds the native content extraction engine.
package chatpage
