// Package ui is the terminal front end for ducktail, built on Bubble Tea.
//
// The model never touches the log or the engine directly. It receives
// engine.Event values from a subscription channel and sends user intent
// (filter input, pause, clear) through a Controller, normally an
// engine.Loop. The viewport is re-rendered only when the snapshot version
// changes or the theme does.
//
// Classified log markup is turned into terminal styling by RenderMarkup:
// each span class maps to a lipgloss style, and nested spans (a filter
// highlight inside an address) combine with the inner class winning.
//
// Key bindings:
//
//   - /: edit the filter (enter or esc to leave the input)
//   - x, esc: clear the filter
//   - p, space: pause or resume refresh
//   - C: clear the log file (asks first)
//   - j/k, g/G, ctrl+d/ctrl+u, pgup/pgdown: scroll
//   - T: cycle theme
//   - ?: help
//   - q: quit
package ui
