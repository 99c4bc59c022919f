package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/movieapp/internal/testutil"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a MariaDB test container loaded with the movieapp schema, configured by the
environment variables from the .env file (DB_IMAGE is required).

Usage:

testcontainers [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testcontainers -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	ready := make(chan *testutil.MariaDB, 1)
	go func() {
		mariadb, err := testutil.StartMariaDB(context.Background(), nil)
		if err != nil {
			log.Fatalf("Failed to create test container: %v\n", err)
		}
		ready <- mariadb
	}()

	var mariadb *testutil.MariaDB
	select {
	case mariadb = <-ready:
		fmt.Printf("DB_TYPE=mariadb\nDB_HOST=%s\nDB_PORT=%s\nDB_DATABASE=%s\nDB_USER=%s\n",
			mariadb.Host, mariadb.Port, mariadb.Database, mariadb.User)
	case sig := <-sigs:
		log.Printf("\nReceived signal: %v before the container was ready\n", sig)
		return
	}

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test container...\n", sig)
	mariadb.Terminate(nil)
}
