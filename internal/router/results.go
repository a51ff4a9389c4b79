package router

import (
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// ResultsRouter serves aggregation artifacts read-only to visualization
// collaborators. It never mutates the files it serves.
type ResultsRouter struct {
	e           *echo.Echo
	summaryPath string
	detailsPath string
}

func NewResultsRouter(e *echo.Echo, summaryPath, detailsPath string) *ResultsRouter {
	return &ResultsRouter{
		e:           e,
		summaryPath: summaryPath,
		detailsPath: detailsPath,
	}
}

func (r *ResultsRouter) Bind() {
	r.e.GET("/api/summary", r.summaryHandler)
	r.e.GET("/api/details", r.detailsHandler)
}

func (r *ResultsRouter) summaryHandler(c echo.Context) error {
	data, err := os.ReadFile(r.summaryPath)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "summary not generated yet"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

func (r *ResultsRouter) detailsHandler(c echo.Context) error {
	f, err := os.Open(r.detailsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "details not generated yet"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	defer f.Close()

	return c.Stream(http.StatusOK, "application/x-ndjson", f)
}
