package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/thuanlv/eelfarm/internal/service/finance"
)

// FinanceHandler serves income, expense and environment reading operations.
type FinanceHandler struct {
	svc    *finance.Service
	logger *zap.Logger
}

// NewFinanceHandler constructs the bookkeeping HTTP adapter.
func NewFinanceHandler(svc *finance.Service, logger *zap.Logger) *FinanceHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FinanceHandler{svc: svc, logger: logger}
}

type incomeRequest struct {
	TankID      string     `json:"tankId"`
	Source      string     `json:"source" binding:"required"`
	TotalIncome float64    `json:"totalIncome"`
	Note        string     `json:"note"`
	Date        *time.Time `json:"date"`
}

func (h *FinanceHandler) incomeInput(req incomeRequest) (finance.IncomeInput, error) {
	tankID, err := parseOptionalID("tankId", req.TankID)
	if err != nil {
		return finance.IncomeInput{}, err
	}
	return finance.IncomeInput{
		TankID:      tankID,
		Source:      req.Source,
		TotalIncome: req.TotalIncome,
		Note:        req.Note,
		Date:        req.Date,
	}, nil
}

func (h *FinanceHandler) CreateIncome(c *gin.Context) {
	var req incomeRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	in, err := h.incomeInput(req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	log, err := h.svc.CreateIncomeLog(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *FinanceHandler) GetIncome(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	log, err := h.svc.GetIncomeLog(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *FinanceHandler) ListIncomes(c *gin.Context) {
	if tank := c.Query("tankId"); tank != "" {
		tankID, err := parseID("tankId", tank)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		logs, err := h.svc.ListIncomeLogsByTank(c.Request.Context(), tankID)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, logs)
		return
	}

	logs, err := h.svc.ListIncomeLogs(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, logs)
}

func (h *FinanceHandler) UpdateIncome(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req incomeRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	in, err := h.incomeInput(req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	log, err := h.svc.UpdateIncomeLog(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, log)
}

func (h *FinanceHandler) DeleteIncome(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteIncomeLog(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type expenseRequest struct {
	Name          string     `json:"name" binding:"required"`
	Category      string     `json:"category" binding:"required"`
	Amount        float64    `json:"amount"`
	Date          *time.Time `json:"date"`
	Payer         string     `json:"payer"`
	RelatedTankID string     `json:"relatedTankId"`
	Note          string     `json:"note"`
}

func (h *FinanceHandler) expenseInput(req expenseRequest) (finance.ExpenseInput, error) {
	tankID, err := parseOptionalID("relatedTankId", req.RelatedTankID)
	if err != nil {
		return finance.ExpenseInput{}, err
	}
	return finance.ExpenseInput{
		Name:          req.Name,
		Category:      req.Category,
		Amount:        req.Amount,
		Date:          req.Date,
		Payer:         req.Payer,
		RelatedTankID: tankID,
		Note:          req.Note,
	}, nil
}

func (h *FinanceHandler) CreateExpense(c *gin.Context) {
	var req expenseRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	in, err := h.expenseInput(req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	expense, err := h.svc.CreateExpense(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, expense)
}

func (h *FinanceHandler) GetExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	expense, err := h.svc.GetExpense(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *FinanceHandler) ListExpenses(c *gin.Context) {
	if tank := c.Query("tankId"); tank != "" {
		tankID, err := parseID("tankId", tank)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		expenses, err := h.svc.ListExpensesByTank(c.Request.Context(), tankID)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, expenses)
		return
	}

	expenses, err := h.svc.ListExpenses(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, expenses)
}

func (h *FinanceHandler) UpdateExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req expenseRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	in, err := h.expenseInput(req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	expense, err := h.svc.UpdateExpense(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, expense)
}

func (h *FinanceHandler) DeleteExpense(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteExpense(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type readingRequest struct {
	TankID      string     `json:"tankId" binding:"required"`
	PH          float64    `json:"pH"`
	Temperature float64    `json:"temperature"`
	Oxygen      float64    `json:"oxygen"`
	Turbidity   float64    `json:"turbidity"`
	RecordedAt  *time.Time `json:"recordedAt"`
}

func (h *FinanceHandler) readingInput(req readingRequest) (finance.ReadingInput, error) {
	tankID, err := parseID("tankId", req.TankID)
	if err != nil {
		return finance.ReadingInput{}, err
	}
	return finance.ReadingInput{
		TankID:      tankID,
		PH:          req.PH,
		Temperature: req.Temperature,
		Oxygen:      req.Oxygen,
		Turbidity:   req.Turbidity,
		RecordedAt:  req.RecordedAt,
	}, nil
}

func (h *FinanceHandler) CreateReading(c *gin.Context) {
	var req readingRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	in, err := h.readingInput(req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	reading, err := h.svc.CreateReading(c.Request.Context(), in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, reading)
}

func (h *FinanceHandler) GetReading(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	reading, err := h.svc.GetReading(c.Request.Context(), id)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (h *FinanceHandler) ListReadings(c *gin.Context) {
	if tank := c.Query("tankId"); tank != "" {
		tankID, err := parseID("tankId", tank)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		readings, err := h.svc.ListReadingsByTank(c.Request.Context(), tankID)
		if err != nil {
			writeError(c, h.logger, err)
			return
		}
		c.JSON(http.StatusOK, readings)
		return
	}

	readings, err := h.svc.ListReadings(c.Request.Context())
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, readings)
}

func (h *FinanceHandler) UpdateReading(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	var req readingRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}
	in, err := h.readingInput(req)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	reading, err := h.svc.UpdateReading(c.Request.Context(), id, in)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, reading)
}

func (h *FinanceHandler) DeleteReading(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}

	if err := h.svc.DeleteReading(c.Request.Context(), id); err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
