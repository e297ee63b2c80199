// Package ui implements the interactive results browser for disksearch using Bubbletea.
package ui
