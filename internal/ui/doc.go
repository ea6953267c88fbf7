// Package ui contains the Bubble Tea program that hosts the shell in a
// terminal. It plays the part of the device: key presses and mouse clicks
// become platform events for the dispatcher, and the dispatcher's status
// snapshots come back as messages that redraw a downsampled copy of the
// emulated screen next to a status panel.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are
//     routed through a typed handler registry so each tea.Msg is handled by
//     a focused function.
//   - Key messages are matched against the key map and pushed to the
//     platform source as raw keycodes; semantic mapping happens in the
//     dispatcher, exactly as it would for a hardware keyboard.
//   - Mouse presses over the screen preview are scaled to device
//     coordinates and pushed as finger events, which the dispatcher hands to
//     the gesture recognizer.
//   - Observer wraps a Program's Send so the dispatcher can publish
//     StatusMsg values without knowing about Bubble Tea.
package ui
