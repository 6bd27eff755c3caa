package users

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type handlerFunc func(ctx context.Context, req *Request) (*Response, error)

// Handlers adapts the user service to gin routes
type Handlers struct {
	service UserService
	logger  *zap.Logger
}

// NewHandlers creates new user handlers
func NewHandlers(service UserService, logger *zap.Logger) *Handlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handlers{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the user routes on the given router
func (h *Handlers) RegisterRoutes(router gin.IRouter) {
	users := router.Group("/users")
	{
		users.POST("", h.CreateUser)
		users.GET("", h.ListUsers)
		users.GET("/:"+PathParamID, h.GetUser)
		users.PUT("/:"+PathParamID, h.UpdateUser)
		users.DELETE("/:"+PathParamID, h.DeleteUser)
	}
}

func (h *Handlers) CreateUser(c *gin.Context) {
	h.serve(c, "create_user", h.service.CreateUser)
}

func (h *Handlers) GetUser(c *gin.Context) {
	h.serve(c, "get_user", h.service.GetUser)
}

func (h *Handlers) UpdateUser(c *gin.Context) {
	h.serve(c, "update_user", h.service.UpdateUser)
}

func (h *Handlers) DeleteUser(c *gin.Context) {
	h.serve(c, "delete_user", h.service.DeleteUser)
}

func (h *Handlers) ListUsers(c *gin.Context) {
	h.serve(c, "list_users", h.service.ListUsers)
}

// serve builds a Request from the gin context, runs the handler and writes its response.
// Errors the service did not classify become a generic 500.
func (h *Handlers) serve(c *gin.Context, operation string, handle handlerFunc) {
	req, err := newRequest(c)
	if err != nil {
		h.logger.Error("Failed to read request body",
			zap.String("operation", operation),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	resp, err := handle(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("Unhandled error in user handler",
			zap.String("operation", operation),
			zap.String("user_id", req.PathParameter(PathParamID)),
			zap.Error(err))
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	writeResponse(c, resp)
}

func newRequest(c *gin.Context) (*Request, error) {
	req := &Request{PathParameters: make(map[string]string, len(c.Params))}
	for _, param := range c.Params {
		req.PathParameters[param.Key] = param.Value
	}

	if c.Request.Body != nil {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return nil, err
		}
		req.Body = string(body)
	}

	return req, nil
}

func writeResponse(c *gin.Context, resp *Response) {
	for key, value := range resp.Headers {
		c.Header(key, value)
	}

	if resp.Body == "" {
		c.Status(resp.StatusCode)
		c.Writer.WriteHeaderNow()
		return
	}

	contentType := resp.Headers["content-type"]
	if contentType == "" {
		contentType = contentTypeJSON
	}
	c.Data(resp.StatusCode, contentType, []byte(resp.Body))
}
