package main

import "pact/internal/app/server"

func main() {
	server.Run()
}
