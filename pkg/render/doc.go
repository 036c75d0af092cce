// Package render defines the renderer contract, a name registry shared by the
// CLI and the page host, indicator message collection and go-theme wiring.
package render
