package routes

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/liip/sheriff"
	"github.com/wayfarer-app/wayfarer/pkg/model"
	"github.com/wayfarer-app/wayfarer/pkg/navigator"
)

func NavigationRouter(router fiber.Router, manager *navigator.Manager) {
	router.Get("/session", getSession(manager))
	router.Post("/preview", postPreview(manager))
	router.Post("/start", postStart(manager))
	router.Post("/conflict", postResolveConflict(manager))
	router.Post("/end", postEnd(manager))
	router.Post("/advance", postAdvance(manager))
	router.Post("/location", postLocation(manager))
}

type routeLegRequest struct {
	Mode string

	DurationMinutes int

	FromStopName     string
	ToStopName       string
	BusServiceNumber string

	Geometry []model.Location
}

type previewRequest struct {
	StartLocationName string
	EndLocationName   string

	StartLocation *model.Location
	EndLocation   *model.Location

	Legs []routeLegRequest
}

func getSession(manager *navigator.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		snapshot, err := manager.Coordinator(userID(c)).Snapshot()
		if err != nil {
			c.SendStatus(fiber.StatusInternalServerError)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"mode":    snapshot.Mode,
			"session": reduceSession(snapshot.Session),
			"preview": reduceSession(snapshot.Preview),
		})
	}
}

func postPreview(manager *navigator.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var requestBody previewRequest
		if err := c.BodyParser(&requestBody); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		route := model.Route{}
		for _, leg := range requestBody.Legs {
			route.Legs = append(route.Legs, model.RouteLeg{
				Mode:             model.ParseLegMode(leg.Mode),
				DurationMinutes:  leg.DurationMinutes,
				FromStopName:     leg.FromStopName,
				ToStopName:       leg.ToStopName,
				BusServiceNumber: leg.BusServiceNumber,
				Geometry:         leg.Geometry,
			})
		}

		coordinator := manager.Coordinator(userID(c))

		err := coordinator.PreviewRoute(
			route,
			requestBody.StartLocationName,
			requestBody.EndLocationName,
			requestBody.StartLocation,
			requestBody.EndLocation,
		)

		if errors.Is(err, navigator.ErrTripConflict) {
			snapshot, _ := coordinator.Snapshot()

			c.SendStatus(fiber.StatusConflict)
			return c.JSON(fiber.Map{
				"error":        err.Error(),
				"existingTrip": reduceSession(snapshot.Session),
			})
		}

		if err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": err.Error(),
			})
		}

		return c.JSON(fiber.Map{
			"success": true,
		})
	}
}

func postStart(manager *navigator.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return commandResponse(c, manager.Coordinator(userID(c)).StartNavigation())
	}
}

func postResolveConflict(manager *navigator.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var requestBody struct {
			SwitchToNew bool
		}
		if err := c.BodyParser(&requestBody); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		return commandResponse(c, manager.Coordinator(userID(c)).ResolveConflict(requestBody.SwitchToNew))
	}
}

func postEnd(manager *navigator.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return commandResponse(c, manager.Coordinator(userID(c)).EndTrip())
	}
}

func postAdvance(manager *navigator.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return commandResponse(c, manager.Coordinator(userID(c)).AdvanceManually())
	}
}

func postLocation(manager *navigator.Manager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var requestBody struct {
			Latitude       float64
			Longitude      float64
			AccuracyMetres float64
		}
		if err := c.BodyParser(&requestBody); err != nil {
			c.SendStatus(fiber.StatusBadRequest)
			return c.JSON(fiber.Map{
				"error": "Invalid request body",
			})
		}

		manager.SubmitFix(userID(c), model.LocationFix{
			Location: model.Location{
				Latitude:  requestBody.Latitude,
				Longitude: requestBody.Longitude,
			},
			AccuracyMetres: requestBody.AccuracyMetres,
			Timestamp:      time.Now(),
		})

		return c.JSON(fiber.Map{
			"success": true,
		})
	}
}

func commandResponse(c *fiber.Ctx, err error) error {
	switch {
	case err == nil:
		return c.JSON(fiber.Map{
			"success": true,
		})
	case errors.Is(err, navigator.ErrConflictUnresolved), errors.Is(err, navigator.ErrTripAlreadyActive):
		c.SendStatus(fiber.StatusConflict)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	default:
		c.SendStatus(fiber.StatusBadRequest)
		return c.JSON(fiber.Map{
			"error": err.Error(),
		})
	}
}

func reduceSession(session *model.TripSession) interface{} {
	if session == nil {
		return nil
	}

	reduced, err := sheriff.Marshal(&sheriff.Options{
		Groups: []string{"basic"},
	}, session)

	if err != nil {
		return nil
	}

	return reduced
}

func userID(c *fiber.Ctx) string {
	return c.Locals("account_userid").(string)
}
