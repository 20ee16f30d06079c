package api

import (
	"github.com/gin-gonic/gin"

	"github.com/biduedson/reservas-api/account"
	"github.com/biduedson/reservas-api/auth/authctx"
	"github.com/biduedson/reservas-api/server"
	"github.com/biduedson/reservas-api/validation"
)

const defaultPageSize = 50

// AccountHandler serves the account endpoints.
type AccountHandler struct {
	accounts *account.Service
}

// NewAccountHandler creates a handler backed by svc.
func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{accounts: svc}
}

type authenticateRequest struct {
	Email string `json:"email" validate:"required"`
	Senha string `json:"senha" validate:"required"`
}

type registerRequest struct {
	Nome  string `json:"nome"`
	Email string `json:"email"`
	Senha string `json:"senha"`
}

type listQuery struct {
	Offset int `form:"offset" validate:"min=0"`
	Limit  int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// Authenticate exchanges email and password for a bearer token.
func (h *AccountHandler) Authenticate(c *gin.Context) {
	var req authenticateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, validation.FromBindError(err))
		return
	}
	if err := validation.ValidateStruct(req); err != nil {
		server.RespondWithError(c, err)
		return
	}

	session, err := h.accounts.Authenticate(c.Request.Context(), req.Email, req.Senha)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, session)
}

// Register creates a regular account.
func (h *AccountHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		server.RespondWithError(c, validation.FromBindError(err))
		return
	}

	view, err := h.accounts.Register(c.Request.Context(), account.RegisterInput{
		Name:     req.Nome,
		Email:    req.Email,
		Password: req.Senha,
	})
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondCreated(c, view)
}

// Me returns the authenticated account.
func (h *AccountHandler) Me(c *gin.Context) {
	id, err := authctx.SubjectID(c.Request.Context())
	if err != nil {
		server.RespondWithError(c, err)
		return
	}

	view, err := h.accounts.Profile(c.Request.Context(), id)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, view)
}

// List returns a page of accounts.
func (h *AccountHandler) List(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		server.RespondWithError(c, validation.FromBindError(err))
		return
	}
	if err := validation.ValidateStruct(q); err != nil {
		server.RespondWithError(c, err)
		return
	}
	if q.Limit == 0 {
		q.Limit = defaultPageSize
	}

	views, err := h.accounts.List(c.Request.Context(), q.Offset, q.Limit)
	if err != nil {
		server.RespondWithError(c, err)
		return
	}
	server.RespondOK(c, server.ListResponse[account.View]{Items: views, Offset: q.Offset, Limit: q.Limit})
}
