package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/stellarlinkco/wordbench/api"
	"github.com/stellarlinkco/wordbench/internal/config"
	"github.com/stellarlinkco/wordbench/internal/store"
	"github.com/stellarlinkco/wordbench/internal/task"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := strings.TrimSpace(os.Getenv("WORDBENCH_CONFIG"))
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := store.Open(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	srv, err := api.NewServer(db, task.DefaultRegistry())
	if err != nil {
		return err
	}

	addr := strings.TrimSpace(os.Getenv("WORDBENCH_ADDR"))
	if addr == "" {
		addr = ":8080"
	}
	return srv.Run(addr)
}
