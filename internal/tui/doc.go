// Package tui renders notes for the terminal: plain styled output for the
// one-shot client commands and a live bubbletea browser over the three
// result sets for the watch command.
package tui
