// Package audio plays the optional ambient loop behind the viewer.
//
// A [Player] streams a [Source] through portaudio: either a [Loop] decoded
// from a WAV file or the synthesized [Pad]. Every block played is analysed
// by a [Meter] so the interface can show a small level display.
package audio
