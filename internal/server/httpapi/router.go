package httpapi

import (
	"github.com/dmitrijs2005/planit/internal/logging"
	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/services"
	"github.com/labstack/echo/v4"
)

// Deps are the collaborators the router needs.
type Deps struct {
	Auth      Authenticator
	Tokens    TokenVerifier
	Users     UserAPI
	Resources *services.Resources
	Log       logging.Logger
}

// NewRouter builds the echo instance with every PlanIT route.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(d.Log)

	e.Use(RequestID(), RequestLogger(d.Log), Recovery(d.Log))

	e.GET("/health", health)

	api := e.Group("/api/v1")
	authed := BearerAuth(d.Tokens)

	api.POST("/auth/login", authHandler{auth: d.Auth}.login)

	users := userHandler{users: d.Users}
	api.POST("/users/register", users.register)
	api.GET("/users", users.list, authed)
	api.GET("/users/:id", users.get, authed)
	api.PUT("/users/:id", users.update, authed)
	api.DELETE("/users/:id", users.remove, authed)

	r := d.Resources
	registerOwned(api, "/events", OwnedAPI[models.EventDTO](r.Events), authed)
	registerOwned(api, "/todos", OwnedAPI[models.ToDoDTO](r.ToDos), authed)
	registerOwned(api, "/shoppinglists", OwnedAPI[models.ShoppingListDTO](r.ShoppingLists), authed)
	registerOwned(api, "/invites", OwnedAPI[models.InviteDTO](r.Invites), authed)
	registerOwned(api, "/importantdates", OwnedAPI[models.ImportantDateDTO](r.ImportantDates), authed)
	registerOwned(api, "/dinners", OwnedAPI[models.DinnerDTO](r.Dinners), authed)

	return e
}
