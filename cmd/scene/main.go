package main

import (
	"fmt"
	"os"
	"runtime"

	"space-scroll/internal/commands"
)

func init() {
	// raylib/OpenGL calls must stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	reg := commands.NewRegistry("run", os.Stderr)
	registerCommands(reg)
	if err := reg.Execute(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "scene: %v\n", err)
		os.Exit(1)
	}
}
