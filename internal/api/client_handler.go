package api

import (
	"connectfitness/coach-api/internal/domain"
	"connectfitness/coach-api/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ClientHandler struct {
	clientService service.ClientService
}

func NewClientHandler(clientService service.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

type CreateClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// CreateClient adds a client to the authenticated coach's roster.
// @Router /clients [post]
func (h *ClientHandler) CreateClient(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.clientService.CreateClient(c.Request.Context(), coachID, service.CreateClientInput{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			c.AbortWithStatusJSON(http.StatusBadRequest, validationErrorBody(verr))
			return
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to create client")
		return
	}
	c.JSON(http.StatusCreated, client)
}

// @Router /clients [get]
func (h *ClientHandler) ListClients(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	clients, err := h.clientService.ListClients(c.Request.Context(), coachID)
	if err != nil {
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve clients")
		return
	}
	if clients == nil {
		clients = []domain.Client{}
	}
	c.JSON(http.StatusOK, clients)
}

// @Router /clients/{clientId} [get]
func (h *ClientHandler) GetClient(c *gin.Context) {
	coachID, ok := coachIDOrAbort(c)
	if !ok {
		return
	}
	client, err := h.clientService.GetClient(c.Request.Context(), coachID, c.Param("clientId"))
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
			return
		}
		_ = c.Error(err)
		abortWithError(c, http.StatusInternalServerError, "Failed to retrieve client")
		return
	}
	c.JSON(http.StatusOK, client)
}
