package main

import (
	"context"
	"log"
	"os"

	"github.com/stjosephs/hostel/core"
	mongodb "github.com/stjosephs/hostel/storage/mongo"
)

var logger *log.Logger

func main() {
	defer os.Exit(0)

	logger = log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()

	// set up DB
	ctx := context.Background()
	db, err := mongodb.Open(ctx, conf)
	errAndDie(err)
	defer func() { _ = db.Client().Disconnect(ctx) }()

	// start CLI
	cli := commandLine{
		staffRepo: mongodb.NewStaffRepository(db),
	}
	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Printf("\nerror: %s\n", err)
		}
		os.Exit(1)
	}
}

func errAndDie(err error) {
	if err != nil {
		logger.Fatal(err)
	}
}
