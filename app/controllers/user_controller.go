package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pedalpoint/bikeshop/app/services"
	"github.com/pedalpoint/bikeshop/pkg/bind"
	"github.com/pedalpoint/bikeshop/pkg/response"
)

// UserController serves registration, login and account endpoints.
type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := c.service.Register(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Created(w, u)
}

func (c *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var in services.LoginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	pair, err := c.service.Login(in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, pair)
}

// Logout exists for client symmetry. Tokens are stateless; the client
// discards them.
func (c *UserController) Logout(w http.ResponseWriter, r *http.Request) {
	response.Message(w, "logged out")
}

func (c *UserController) Me(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}
	u, err := c.service.Get(userID)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}

func (c *UserController) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(r)
	if !ok {
		response.Unauthorized(w)
		return
	}

	var in services.ProfileInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := c.service.UpdateProfile(userID, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}

// UpdateUser lets an admin edit any account's profile.
func (c *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var in services.ProfileInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := c.service.UpdateProfile(id, in)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}

// SetRole lets an admin promote or demote an account.
func (c *UserController) SetRole(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUint(r, "id")
	if !ok {
		response.Error(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var in struct {
		Role string `json:"role" validate:"required,in=admin,user"`
	}
	if errs, err := bind.JSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	u, err := c.service.SetRole(id, in.Role)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}

func (c *UserController) GetByUsername(w http.ResponseWriter, r *http.Request) {
	u, err := c.service.GetByUsername(chi.URLParam(r, "username"))
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Success(w, u)
}

// List returns accounts, optionally narrowed by ?q=.
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	page, limit := pageLimit(r)
	users, pg, err := c.service.List(r.URL.Query().Get("q"), page, limit)
	if err != nil {
		fail(w, r, err)
		return
	}
	response.Paginated(w, users, pg)
}
