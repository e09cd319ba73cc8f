// Package viz is the terminal player: a Bubble Tea model that drives a
// playback controller and draws the graph visible at the cursor.
//
//   - [Model]: the player, built with [NewModel]
//   - [Canvas]: braille dot canvas used for the node/edge drawing
//   - Themes: meadow, cyberpunk, retro, minimal
//
// # Key Bindings
//
//	Space      - Play/Pause
//	Left/[     - Step back
//	Right/]    - Step forward
//	Home       - Rewind to the start of the range
//	T          - Cycle colour themes
//	Q          - Quit
//
// The controller passed to NewModel should use playback.ManualScheduler;
// the model advances it from its own tick messages.
package viz
