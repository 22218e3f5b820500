//go:build windows

package cmd

import "os"

// shutdownSignals returns the OS signals forwarded to a child process for
// graceful shutdown. Windows only delivers Interrupt.
func shutdownSignals() []os.Signal {
	return []os.Signal{os.Interrupt}
}
