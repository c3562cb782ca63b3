package internal

import (
	"context"
	"log"

	"github.com/robfig/cron/v3"
)

const CRON_SCHEDULE_KEEPALIVE = "*/10 * * * *" // Every 10 minutes
const CRON_SCHEDULE_CATALOGUE = "5 */1 * * *"  // Every hour

type SessionKeeper interface {
	KeepAlive(ctx context.Context) error
}

type CatalogueWarmer interface {
	Warm(ctx context.Context) (int, error)
}

func StartCron(session SessionKeeper, catalogue CatalogueWarmer) (*cron.Cron, error) {

	c := cron.New()

	log.Print("Starting CRON jobs for session keep-alive and catalogue warm-up")

	if _, err := c.AddFunc(CRON_SCHEDULE_KEEPALIVE, func() {
		if err := session.KeepAlive(context.Background()); err != nil {
			log.Printf("Error refreshing session: %v\n", err)
		}
	}); err != nil {
		return nil, err
	}

	if _, err := c.AddFunc(CRON_SCHEDULE_CATALOGUE, func() {
		numSurahs, err := catalogue.Warm(context.Background())
		if err != nil {
			log.Printf("Error warming catalogue: %v\n", err)
			return
		}
		log.Printf("Cached %d surahs", numSurahs)
	}); err != nil {
		return nil, err
	}

	c.Start()
	return c, nil
}
