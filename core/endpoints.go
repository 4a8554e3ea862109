package core

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/static"
	"github.com/gin-gonic/gin"

	m "github.com/larokaa/projeto-acoes/models"
)

type collectRequest struct {
	Ticker string `json:"ticker"`
}

const (
	DefaultAddr = ":8080"
)

func GetHttpServer(sc ServiceContext, addr, staticDir string) *http.Server {
	engine := gin.Default()

	engine.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// The interface directory is served at the site root; /api keeps priority.
	if staticDir != "" {
		engine.Use(static.Serve("/", static.LocalFile(staticDir, true)))
	}

	engine.POST("/api/fetch-and-save", func(c *gin.Context) { fetchAndSave(c, sc) })
	engine.GET("/api/prices/:ticker", func(c *gin.Context) { getPrices(c, sc) })

	if addr == "" {
		addr = DefaultAddr
	}

	server := &http.Server{
		Addr:        addr,
		Handler:     engine,
		ReadTimeout: 10 * time.Second,
		// Must outlast the blocking 30s provider call.
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return server
}

func fetchAndSave(c *gin.Context, sc ServiceContext) {
	var req collectRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Ticker) == "" {
		c.JSON(http.StatusBadRequest, m.GetErrorResponse("ticker required", ""))
		return
	}

	result, err := sc.CollectAndStore(req.Ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, m.GetErrorResponse("failed to collect or store data", err.Error()))
		return
	}
	if result == nil {
		c.JSON(http.StatusOK, m.GetWarningResponse("no data found"))
		return
	}

	c.JSON(http.StatusOK, m.CollectResponse{
		Status:   m.StatusSuccess,
		Message:  "data collected and saved",
		Inserted: result.Inserted,
		Skipped:  result.Skipped,
	})
}

func getPrices(c *gin.Context, sc ServiceContext) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Param("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, m.GetErrorResponse("ticker required", ""))
		return
	}

	prices, err := sc.Store.GetPricesByTicker(sc.Context, ticker)
	if err != nil {
		c.JSON(http.StatusInternalServerError, m.GetErrorResponse("failed to query prices", err.Error()))
		return
	}

	c.JSON(http.StatusOK, m.PricesResponse{
		Status: m.StatusSuccess,
		Ticker: ticker,
		Count:  len(prices),
		Prices: prices,
	})
}
