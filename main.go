package main

import (
	"log"

	"github.com/carelift/dispatch/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
