package api

import (
	"errors"

	models "IndexPulse/internal/domain/models"
	"IndexPulse/internal/usecase"
	xhttp "IndexPulse/pkg/http"
	xlogger "IndexPulse/pkg/logger"
	"IndexPulse/pkg/util"

	"github.com/labstack/echo/v4"
)

// SignalsEchoHandler implements Echo-based HTTP handlers following Clean Architecture.
type SignalsEchoHandler struct {
	logger  *xlogger.Logger
	eval    *usecase.EvaluateUseCase
	board   *usecase.BoardUseCase
	history *usecase.HistoryUseCase
}

func NewSignalsEchoHandler(logger *xlogger.Logger, eval *usecase.EvaluateUseCase, board *usecase.BoardUseCase, history *usecase.HistoryUseCase) *SignalsEchoHandler {
	return &SignalsEchoHandler{logger: logger, eval: eval, board: board, history: history}
}

func (h *SignalsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/signal", h.Signal)
	g.GET("/factors", h.Factors)
	g.GET("/trend", h.Trend)
	g.GET("/prediction", h.Prediction)
	g.GET("/board", h.Board)
	g.GET("/history", h.History)
}

func (h *SignalsEchoHandler) Signal(c echo.Context) error {
	req := &models.SignalRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.eval.Evaluate(c.Request().Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolNotTracked) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s not tracked", req.Symbol))
		}
		h.logger.Error("signal usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=2")
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) Factors(c echo.Context) error {
	req := &models.FactorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.eval.Evaluate(c.Request().Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolNotTracked) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s not tracked", req.Symbol))
		}
		h.logger.Error("factors usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol":      res.Symbol,
		"total_score": res.TotalScore,
		"factors":     res.Factors,
	})
}

func (h *SignalsEchoHandler) Trend(c echo.Context) error {
	req := &models.TrendRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.eval.Evaluate(c.Request().Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolNotTracked) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s not tracked", req.Symbol))
		}
		h.logger.Error("trend usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol":     res.Symbol,
		"trend_5min": res.Trend5Min,
		"trend_15min": res.Trend15Min,
	})
}

func (h *SignalsEchoHandler) Prediction(c echo.Context) error {
	req := &models.PredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.eval.Evaluate(c.Request().Context(), req.Symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrSymbolNotTracked) {
			return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s not tracked", req.Symbol))
		}
		h.logger.Error("prediction usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, map[string]interface{}{
		"symbol":     res.Symbol,
		"prediction": res.Prediction,
	})
}

func (h *SignalsEchoHandler) Board(c echo.Context) error {
	res, err := h.board.GetBoard(c.Request().Context())
	if err != nil {
		h.logger.Error("board usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	c.Response().Header().Set(echo.HeaderCacheControl, "private, max-age=2")
	return xhttp.SuccessResponse(c, res)
}

func (h *SignalsEchoHandler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	p := usecase.GetHistoryParams{Symbol: req.Symbol, Limit: req.Limit}
	if req.From != "" {
		t, ok := util.ParseTime(req.From)
		if !ok {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("from must be RFC3339 or unix seconds"))
		}
		p.From = t
	}
	if req.To != "" {
		t, ok := util.ParseTime(req.To)
		if !ok {
			return xhttp.BadRequestResponse(c, xhttp.BadRequestError("to must be RFC3339 or unix seconds"))
		}
		p.To = t
	}

	res, err := h.history.GetHistory(c.Request().Context(), p)
	if err != nil {
		h.logger.Error("history usecase error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
