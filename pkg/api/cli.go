package api

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
	"github.com/wayfarer-app/wayfarer/pkg/arrivals"
	"github.com/wayfarer-app/wayfarer/pkg/consumer"
	"github.com/wayfarer-app/wayfarer/pkg/database"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"github.com/wayfarer-app/wayfarer/pkg/navigator"
	"github.com/wayfarer-app/wayfarer/pkg/notify"
	"github.com/wayfarer-app/wayfarer/pkg/redis_client"
	"github.com/wayfarer-app/wayfarer/pkg/tripstore"
	"github.com/wayfarer-app/wayfarer/pkg/util"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the navigation web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					if err := database.Connect(); err != nil {
						return err
					}
					if err := redis_client.Connect(); err != nil {
						return err
					}

					env := util.GetEnvironmentVariables()

					if env["WAYFARER_ARRIVALS_ENDPOINT"] == "" {
						log.Fatal().Msg("\"WAYFARER_ARRIVALS_ENDPOINT\" not set in environment")
					}

					arrivalsSource := arrivals.NewCachedSource(arrivals.NewHTTPSource(
						env["WAYFARER_ARRIVALS_ENDPOINT"],
						env["WAYFARER_ARRIVALS_API_KEY"],
					))

					queueSink, err := notify.NewQueueSink()
					if err != nil {
						return err
					}

					dispatcher := notify.NewDispatcher(queueSink, notify.HasRegisteredTarget)

					manager := navigator.NewManager(
						tripstore.NewMongoStore(),
						arrivalsSource,
						dispatcher,
						navigator.Events{
							AdvancedToLeg: func(session *model.TripSession, newLegIndex int) {
								log.Info().
									Str("trip", session.PrimaryIdentifier).
									Int("legindex", newLegIndex).
									Msg("Trip advanced")
							},
							Completed: func(session *model.TripSession) {
								log.Info().Str("trip", session.PrimaryIdentifier).Msg("Trip completed")
							},
							ConflictDetected: func(existing *model.TripSession) {
								log.Info().Str("trip", existing.PrimaryIdentifier).Msg("Trip conflict detected")
							},
						},
					)
					defer manager.Close()

					locationConsumer := consumer.RedisConsumer{
						QueueName:       navigator.LocationQueueName,
						NumberConsumers: 5,
						BatchSize:       200,
						Timeout:         2 * time.Second,
						Consumer:        navigator.NewLocationBatchConsumer(manager),
					}
					locationConsumer.Setup()

					return SetupServer(c.String("listen"), manager)
				},
			},
		},
	}
}
