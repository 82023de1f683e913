/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package main

import (
	"os"

	"github.com/vipcxj/relrange/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
