// Package widgets holds the reference widgets: containers, text, buttons
// and a slider.
package widgets
