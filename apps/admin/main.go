package main

import (
	"log"
	"os"

	"madaris/core"
	"madaris/core/account"
	"madaris/core/school"
	"madaris/services/logger"
	"madaris/storage/kv/file"
	"madaris/storage/kv/postgres"
)

func main() {
	defer os.Exit(0)

	std := log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(std, conf)
	logger.Enable(!conf.Debug)

	// set up storage; Postgres when a database is configured, local files
	// otherwise
	cli := commandLine{}
	var backend core.Backend
	if conf.DatabaseURL != "" {
		db, err := pgkv.Open(conf)
		if err != nil {
			logger.Fatal(err.Error(), err)
		}
		defer db.Close()
		cli.db = db.DB
		backend = pgkv.NewBackend(db)
	} else {
		fb, err := filekv.NewBackend(conf.DataDir)
		if err != nil {
			logger.Fatal(err.Error(), err)
		}
		backend = fb
	}

	store := core.NewStore(backend, logger)
	schoolSvc := school.NewService(store, conf, logger)
	accSvc := account.NewService(store, schoolSvc, logger)
	schoolSvc.BindAccounts(accSvc)
	cli.accSvc = accSvc

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			logger.Error(err.Error(), err)
		}
		os.Exit(1)
	}
}
