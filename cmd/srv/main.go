package main

import (
	"log"
	"os"
)

func main() {
	server := &srv{}
	app := server.newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
