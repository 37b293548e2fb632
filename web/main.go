package main

import (
	"log"
	"os"

	"github.com/df07/go-pathtracer/web/server"
	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "pathtracer-web"
	app.Usage = "serve path traced renders over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port",
			Value: 8080,
			Usage: "port to serve on",
		},
	}
	app.Action = func(c *cli.Context) error {
		port := c.Int("port")
		log.Printf("Path Tracer Web Server")
		log.Printf("Visit http://localhost:%d to start rendering", port)
		return server.NewServer(port).Start()
	}

	if err := app.Run(os.Args); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
