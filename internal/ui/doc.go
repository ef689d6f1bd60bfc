// Package ui contains the Bubble Tea program that powers the session picker.
// The Model focuses on message orchestration; dedicated files own input
// handling, rendering, and asynchronous commands.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages, which are routed
//     through a typed handler registry so each tea.Msg is handled by a focused
//     function (key presses, window resizes, refresh outcomes, action results).
//   - Key presses either mutate the query input, move the selection, or return
//     a tea.Cmd that runs a provider call off the event loop (activation, pane
//     moves). The command's result arrives back as a typed message.
//   - Live updates come from the refresh coalescer: waitForUpdate blocks on
//     its channel and is re-armed after every refreshMsg, so exactly one
//     reader is outstanding at a time.
//
// Selection state lives in picker.Controller; the Model never mutates rows or
// indices directly and renders from State copies, which keeps the rendering
// and filtering concerns testable without the TUI event loop.
package ui
