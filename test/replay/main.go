package main

import (
	"github.com/spf13/cobra"

	"github.com/zostay/go-pop3/test/replay/cmd"
)

func main() {
	err := cmd.Execute()
	cobra.CheckErr(err)
}
