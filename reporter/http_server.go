// This is a http type of reporter.
// It fetches data from the transfer orchestrator and the request store
// and publishes on the http routes.

package reporter

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/utexo-io/rgb-bridge-go/transfermgr"
)

const (
	ROUTE_HELLO    = "/hello"
	ROUTE_TRANSFER = "/transfer"
	ROUTE_REQUESTS = "/requests"
)

// StatusSource answers invoice status queries (implemented by the
// transfer orchestrator).
type StatusSource interface {
	OnchainSendStatus(ctx context.Context, invoice string) (*transfermgr.StatusReport, error)
}

// RequestSource lists in-flight transfer requests (implemented by the
// sqlite request store).
type RequestSource interface {
	ListUnfinished() ([]*transfermgr.TransferRequest, error)
}

type HttpReporter struct {
	serverIP   string // listen ip
	serverPort string // listen port

	// upstream data sources
	status   StatusSource
	requests RequestSource
}

func NewHttpReporter(serverIP string, serverPort string, status StatusSource, requests RequestSource) *HttpReporter {
	return &HttpReporter{
		serverIP:   serverIP,
		serverPort: serverPort,
		status:     status,
		requests:   requests,
	}
}

// Hook up routes & handlers
func (h *HttpReporter) SetupRouter() *gin.Engine {
	router := gin.Default()

	// Define routes & handlers
	router.GET(ROUTE_HELLO, Hello)
	router.GET(ROUTE_TRANSFER, h.Transfer)
	router.GET(ROUTE_REQUESTS, h.Requests)

	return router
}

// Hook up router & ip:port
func (h *HttpReporter) Run() {
	router := h.SetupRouter()
	address := h.serverIP + ":" + h.serverPort
	if err := router.Run(address); err != nil {
		panic(err)
	}
}

// Example route.
func Hello(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "world",
	})
}

// Fetch the bridge-side status of an invoice
// Publish on the route
func (h *HttpReporter) Transfer(c *gin.Context) {
	invoice := c.Query("invoice")
	if invoice == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invoice must be provided"})
		return
	}

	report, err := h.status.OnchainSendStatus(c.Request.Context(), invoice)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if report != nil {
		c.JSON(http.StatusOK, gin.H{"data": report})
	} else {
		c.JSON(http.StatusNotFound, gin.H{"error": "No transfer found"})
	}
}

// Fetch unfinished transfer requests from the request store
// Publish on the route
func (h *HttpReporter) Requests(c *gin.Context) {
	reqs, err := h.requests.ListUnfinished()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(reqs) > 0 {
		c.JSON(http.StatusOK, gin.H{"data": reqs})
	} else {
		c.JSON(http.StatusNotFound, gin.H{"error": "No unfinished requests"})
	}
}
