// Package ui contains the Bubble Tea program that hosts the widget scene in a
// terminal. The widget screen is a term.Canvas; every cell is one display
// unit, so the same layouts that drive a pixel display run here unchanged.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function.
//   - Left-button mouse presses, motion and releases become touch samples and
//     are fed to the gesture detector, which dispatches them to the widgets.
//     Samples from the remote feed arrive as SampleMsg and take the same path.
//   - Keys step the pager, and while a menu is open they search it or pick a
//     row, standing in for a finger on terminals without mouse reporting.
//
// The view is the canvas followed by a status line and the most recent scene
// activity, laid out with internal/format/table.
package ui
