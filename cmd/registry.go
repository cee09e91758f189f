package cmd

import (
	"github.com/spf13/cobra"

	"coilgen.GO/core/registry"
)

// Register queues a command from a custom package's init, such as
// materials:scenarios. It panics on a name already queued or once Apply ran.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd: Register(" + c.Name() + ") after Apply")
	}
	list := registered()
	for _, have := range list {
		if have.Name() == c.Name() {
			panic("cmd: duplicate command " + c.Name())
		}
	}
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, append(list, c))
}

// Apply mounts the queued commands under the root command and locks the
// registry. Later calls do nothing.
func Apply() {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		return
	}
	for _, c := range registered() {
		if have, _, err := rootCmd.Find([]string{c.Name()}); err == nil && have != rootCmd {
			panic("cmd: " + c.Name() + " shadows a built-in command")
		}
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}

func registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}
