// Package process terminates the browser process tree left behind by a
// headless verification session.
package process
