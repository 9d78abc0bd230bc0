package main

import "github.com/DevSymphony/sym-checkstyle/internal/cmd"

// Version is set at build time with -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cmd.SetVersion(Version)
	cmd.Execute()
}
