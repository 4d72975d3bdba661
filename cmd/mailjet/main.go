package main

import (
	"github.com/pixelvide/mailjet-go/pkg/root"

	_ "github.com/pixelvide/mailjet-go/pkg/console" // Register commands
)

func main() {
	root.Execute()
}
