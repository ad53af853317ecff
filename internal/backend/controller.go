package backend

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ConversionsResponse is the body of GET /screens/:id/conversions.
type ConversionsResponse struct {
	ScreenID int `json:"screenId"`
	Count    int `json:"count"`
}

// Controller exposes a Store over HTTP.
type Controller struct {
	store *Store
	log   zerolog.Logger
}

// NewController returns a controller serving store.
func NewController(store *Store, log zerolog.Logger) *Controller {
	c := &Controller{
		store: store,
		log:   log.With().Str("component", "backend").Logger(),
	}
	return c
}

// Register mounts the routes on e.
func (c *Controller) Register(e *echo.Echo) {
	e.GET("/onboarding_screen", c.GetOnboardingScreen)
	e.POST("/screens/:id/log_conversion", c.LogConversion)
	e.GET("/screens/:id/conversions", c.GetConversions)
}

// GetOnboardingScreen returns the onboarding screen as written in the fixture.
func (c *Controller) GetOnboardingScreen(ctx echo.Context) error {
	_, raw := c.store.OnboardingScreen()
	return ctx.JSONBlob(http.StatusOK, raw)
}

// LogConversion records a conversion for the screen in the path.
func (c *Controller) LogConversion(ctx echo.Context) error {

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	total, err := c.store.LogConversion(id)
	if errors.Is(err, ErrScreenNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	c.log.Info().
		Int("screen_id", id).
		Int("total", total).
		Str("request_id", ctx.Request().Header.Get(echo.HeaderXRequestID)).
		Msg("conversion logged")

	return ctx.NoContent(http.StatusNoContent)
}

// GetConversions returns the conversion count for the screen in the path.
func (c *Controller) GetConversions(ctx echo.Context) error {

	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err)
	}

	count, err := c.store.Conversions(id)
	if errors.Is(err, ErrScreenNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err)
	}

	res := ConversionsResponse{
		ScreenID: id,
		Count:    count,
	}

	return ctx.JSON(http.StatusOK, res)
}
