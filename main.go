package main

import (
	"github.com/jessevdk/go-flags"
	"go-home.io/x/ttlock/server"
	"go-home.io/x/ttlock/settings"
)

func main() {
	options := &settings.StartUpOptions{}
	_, err := flags.Parse(options)
	if err != nil {
		panic(err)
	}

	s := settings.Load(options)
	s.SystemLogger().Info("Starting TTLock bridge")

	srv, err := server.NewServer(s)
	if err != nil {
		s.SystemLogger().Fatal("Failed to start TTLock bridge", err)
	}

	srv.Start()
}
