package main

import (
	"os"

	"github.com/hashicorp-forge/edusign-go/internal/cmd"
)

func main() {
	os.Exit(cmd.Main(os.Args))
}
