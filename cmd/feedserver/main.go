// Command feedserver serves sensor readings in the JSON shape the watch
// companion fetches. It is a stand-in for the real sensor backend during
// development.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"sensorwatch/internal/buildinfo"
	"sensorwatch/internal/feed"
)

type config struct {
	Addr     string
	DataFile string
	Debug    bool
}

func parseConfig() config {
	var cfg config
	flag.StringVar(&cfg.Addr, "addr", ":8080", "Listen address.")
	flag.StringVar(&cfg.DataFile, "data", "", "JSON file with an array of readings (empty = built-in sample).")
	flag.BoolVar(&cfg.Debug, "debug", false, "Run gin in debug mode.")
	flag.Parse()

	// Environment overrides flags.
	if v := os.Getenv("FEED_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("FEED_DATA"); v != "" {
		cfg.DataFile = v
	}
	return cfg
}

func main() {
	cfg := parseConfig()

	readings := feed.SampleReadings()
	if cfg.DataFile != "" {
		var err error
		readings, err = feed.LoadFile(cfg.DataFile)
		if err != nil {
			log.Fatal(err)
		}
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Length", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}))
	feed.SetupRoutes(r, feed.NewStore(readings))

	log.Printf("feedserver %s: %d readings, listening on %s", buildinfo.String(), len(readings), cfg.Addr)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatalf("feedserver: %v", err)
	}
}
