package main

import (
	"github.com/mj1618/a11y-conform/cmd"
	_ "github.com/mj1618/a11y-conform/internal/platform/virtual"
)

func main() {
	cmd.Execute()
}
