package main

import (
	"flag"
	"log"

	"github.com/offkey/offkey/cmd"
)

func main() {
	shouldRunMigrations := flag.Bool("migrations", false, "Run database migrations")
	shouldRunServer := flag.Bool("server", false, "Run the API server")
	shouldRunMonitors := flag.Bool("monitors", false, "Run the monitor scheduler")
	flag.Parse()

	if !*shouldRunMigrations && !*shouldRunServer && !*shouldRunMonitors {
		log.Fatal("specify at least one of -migrations, -server or -monitors")
	}

	if *shouldRunMigrations {
		if err := cmd.RunMigrations(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunServer {
		if err := cmd.RunServer(); err != nil {
			log.Fatal(err)
		}
	}
	if *shouldRunMonitors {
		if err := cmd.RunMonitorScheduler(); err != nil {
			log.Fatal(err)
		}
	}
}
