// Package server exposes normalized exam records over HTTP.
//
// Records are loaded once at startup and never modified, so handlers share
// them without locking.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pfrederiksen/exam-dates/internal/calendar"
	"github.com/pfrederiksen/exam-dates/internal/exam"
	"github.com/pfrederiksen/exam-dates/internal/filter"
	"github.com/pfrederiksen/exam-dates/internal/logger"
)

const shutdownTimeout = 5 * time.Second

// Options configures a Server.
type Options struct {
	CORSOrigins  []string
	Location     *time.Location // calendar feed timezone
	CalendarName string
}

type Server struct {
	Echo    *echo.Echo
	records []exam.Record
	opts    Options
}

// New builds a server over records.
func New(records []exam.Record, opts Options) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info("Request handled", logger.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency.String(),
			})
			logger.IncrCounter("http_requests")
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: opts.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
	}))

	logger.SetGauge("records_loaded", float64(len(records)))

	s := &Server{
		Echo:    e,
		records: records,
		opts:    opts,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)
	s.Echo.GET("/metrics", s.handleMetrics)
	s.Echo.GET("/exams", s.handleListExams)
	s.Echo.GET("/exams.ics", s.handleCalendar)
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.Echo.Start(addr)
	}()

	logger.Info("Server started", logger.Fields{
		"addr":    addr,
		"records": len(s.records),
	})

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		logger.Info("Server shutting down", nil)
		return s.Echo.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// handleMetrics reports the process counters, gauges and timings.
func (s *Server) handleMetrics(c echo.Context) error {
	return c.JSON(http.StatusOK, logger.GetMetricsSnapshot())
}

func (s *Server) handleListExams(c echo.Context) error {
	f, err := queryFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	matches := f.Apply(s.records)
	if len(matches) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "No exams found"})
	}
	return c.JSON(http.StatusOK, matches)
}

func (s *Server) handleCalendar(c echo.Context) error {
	f, err := queryFilter(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"message": err.Error()})
	}

	matches := f.Apply(s.records)
	if len(matches) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"message": "No exams found"})
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/calendar; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	_, err = calendar.WriteICS(c.Response(), matches, calendar.Options{
		Location: s.opts.Location,
		Name:     s.opts.CalendarName,
	})
	return err
}

// queryFilter builds a filter from the course_code, exam_type and period query
// parameters. Absent parameters match everything.
func queryFilter(c echo.Context) (*filter.Filter, error) {
	f := filter.NewFilter()
	if code := c.QueryParam("course_code"); code != "" {
		f.Courses = []string{code}
	}
	if examType := c.QueryParam("exam_type"); examType != "" {
		f.ExamTypes = []string{examType}
	}
	if period := c.QueryParam("period"); period != "" {
		from, to, err := filter.ParseDateRange(period, time.Now())
		if err != nil {
			return nil, err
		}
		f.DateFrom, f.DateTo = from, to
	}
	return f, nil
}
