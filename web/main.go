package main

import (
	"flag"
	"log"

	"github.com/dps/go-raytracer/web/server"
)

func main() {
	port := flag.Int("port", 8080, "Port to serve on")
	flag.Parse()

	srv := server.NewServer(*port)
	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
