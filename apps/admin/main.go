package main

import (
	"fmt"
	"log"
	"os"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/storage/database"
)

func main() {
	conf := core.NewConfig()

	if err := database.CreateIfNotExist(conf); err != nil {
		log.Fatalf("admin: setting up database: %v", err)
	}
	db, err := database.Open(conf)
	if err != nil {
		log.Fatalf("admin: opening database: %v", err)
	}
	defer func() { _ = db.Close() }()

	cli := &commandLine{
		usrRepo: database.NewUserRepository(db),
		db:      db.DB,
	}

	if err := cli.run(os.Args); err != nil {
		if err == errHelp {
			os.Exit(2)
		}
		fmt.Fprintf(os.Stderr, "admin: %v\n", err)
		os.Exit(1)
	}
}
