package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/planit/internal/server/models"
	"github.com/dmitrijs2005/planit/internal/server/services"
	"github.com/labstack/echo/v4"
)

// Authenticator performs logins.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
}

// UserAPI is the account surface used by the handlers.
type UserAPI interface {
	Register(ctx context.Context, name, email, password string) (*models.UserDTO, error)
	GetAll(ctx context.Context, callerID int64, page, pageSize int) ([]models.UserDTO, error)
	GetByID(ctx context.Context, callerID, id int64) (*models.UserDTO, error)
	Update(ctx context.Context, callerID, id int64, dto models.UserDTO) (*models.UserDTO, error)
	Delete(ctx context.Context, callerID, id int64) (*models.UserDTO, error)
}

// OwnedAPI is the surface of one per-user resource kind.
type OwnedAPI[D any] interface {
	Create(ctx context.Context, callerID int64, dto D) (*D, error)
	GetAll(ctx context.Context, callerID int64, page, pageSize int) ([]D, error)
	GetByID(ctx context.Context, callerID, id int64) (*D, error)
	Update(ctx context.Context, callerID, id int64, dto D) (*D, error)
	Delete(ctx context.Context, callerID, id int64) (*D, error)
}

func health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

type authHandler struct {
	auth Authenticator
}

func (h authHandler) login(c echo.Context) error {
	var req models.LoginDTO
	if err := c.Bind(&req); err != nil {
		return NewBadRequest("Request body must be JSON with email and password.")
	}

	res, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type userHandler struct {
	users UserAPI
}

func (h userHandler) register(c echo.Context) error {
	var req models.UserRegistrationDTO
	if err := c.Bind(&req); err != nil {
		return NewBadRequest("Request body must be JSON with name, email and password.")
	}

	dto, err := h.users.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h userHandler) list(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return err
	}

	out, err := h.users.GetAll(c.Request().Context(), CallerID(c), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h userHandler) get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	dto, err := h.users.GetByID(c.Request().Context(), CallerID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h userHandler) update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req models.UserDTO
	if err := c.Bind(&req); err != nil {
		return NewBadRequest("Request body must be a JSON user.")
	}

	dto, err := h.users.Update(c.Request().Context(), CallerID(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

func (h userHandler) remove(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	dto, err := h.users.Delete(c.Request().Context(), CallerID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dto)
}

type ownedHandler[D any] struct {
	svc OwnedAPI[D]
}

// registerOwned mounts create/list on path and get/update/delete on
// path/:id, all behind mw.
func registerOwned[D any](g *echo.Group, path string, svc OwnedAPI[D], mw ...echo.MiddlewareFunc) {
	h := ownedHandler[D]{svc: svc}
	g.POST(path, h.create, mw...)
	g.GET(path, h.list, mw...)
	g.GET(path+"/:id", h.get, mw...)
	g.PUT(path+"/:id", h.update, mw...)
	g.DELETE(path+"/:id", h.remove, mw...)
}

func (h ownedHandler[D]) create(c echo.Context) error {
	var req D
	if err := c.Bind(&req); err != nil {
		return NewBadRequest("Request body must be valid JSON.")
	}

	out, err := h.svc.Create(c.Request().Context(), CallerID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, out)
}

func (h ownedHandler[D]) list(c echo.Context) error {
	page, size, err := pageParams(c)
	if err != nil {
		return err
	}

	out, err := h.svc.GetAll(c.Request().Context(), CallerID(c), page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h ownedHandler[D]) get(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	out, err := h.svc.GetByID(c.Request().Context(), CallerID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h ownedHandler[D]) update(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req D
	if err := c.Bind(&req); err != nil {
		return NewBadRequest("Request body must be valid JSON.")
	}

	out, err := h.svc.Update(c.Request().Context(), CallerID(c), id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func (h ownedHandler[D]) remove(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	out, err := h.svc.Delete(c.Request().Context(), CallerID(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func idParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, NewBadRequest("Path parameter id must be a positive integer.")
	}
	return id, nil
}

// pageParams reads ?page= and ?size=. Missing values are passed on as 0 and
// clamped by the repository.
func pageParams(c echo.Context) (int, int, error) {
	var page, size int
	err := echo.QueryParamsBinder(c).
		Int("page", &page).
		Int("size", &size).
		BindError()
	if err != nil {
		return 0, 0, NewBadRequest("Query parameters page and size must be integers.")
	}
	return page, size, nil
}
