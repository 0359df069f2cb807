package http

import (
	"encoding/json"
	"net/http"

	"previsao/internal/core"
	"previsao/internal/insight"
	"previsao/internal/log"
	"previsao/internal/services"
)

type forecastResponse struct {
	HouseholdID string         `json:"household_id"`
	Month       string         `json:"month"`
	Projection  projectionJSON `json:"projection"`
	Totals      totalsJSON     `json:"totals"`
	History     historyJSON    `json:"history"`
	Insights    []insightJSON  `json:"insights"`
	RiskEvent   *riskEventJSON `json:"risk_event,omitempty"`
}

type projectionJSON struct {
	ProjectedBalanceCents           int64 `json:"projected_balance_cents"`
	DailyRunRateCents               int64 `json:"daily_run_rate_cents"`
	ProjectedRemainingVariableCents int64 `json:"projected_remaining_variable_cents"`
	DaysElapsed                     int   `json:"days_elapsed"`
	DaysInMonth                     int   `json:"days_in_month"`
	DaysRemaining                   int   `json:"days_remaining"`
}

type totalsJSON struct {
	ProjectedBalanceCents int64 `json:"projected_balance_cents"`
	RealizedBalanceCents  int64 `json:"realized_balance_cents"`
	PendingExpensesCents  int64 `json:"pending_expenses_cents"`
	PendingIncomeCents    int64 `json:"pending_income_cents"`
}

type historyJSON struct {
	VariableAvgCents int64 `json:"variable_avg_cents"`
	MonthsCount      int   `json:"months_count"`
}

type insightJSON struct {
	ID            string         `json:"id"`
	Type          string         `json:"type"`
	Severity      string         `json:"severity"`
	MessageKey    string         `json:"message_key"`
	Params        map[string]any `json:"params,omitempty"`
	ActionHintKey string         `json:"action_hint_key,omitempty"`
}

type riskEventJSON struct {
	Kind        string `json:"kind"`
	AmountCents int64  `json:"amount_cents"`
}

type transactionJSON struct {
	ID          int64  `json:"id,omitempty"`
	HouseholdID string `json:"household_id"`
	Date        string `json:"date"`
	DueDate     string `json:"due_date,omitempty"`
	Amount      string `json:"amount"`
	Kind        string `json:"kind"`
	Status      string `json:"status"`
	ExpenseType string `json:"expense_type,omitempty"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	Subcategory string `json:"subcategory,omitempty"`
}

type riskReducedRequest struct {
	HouseholdID string `json:"household_id"`
	Month       string `json:"month"`
	AmountCents int64  `json:"amount_cents"`
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	householdID, month, ok := forecastParams(w, r)
	if !ok {
		return
	}

	eval, err := s.svc.Evaluate(r.Context(), householdID, month)
	if err != nil {
		writeServiceError(w, r, "Forecast evaluation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, buildForecastResponse(eval))
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, http.MethodGet)
		return
	}
	householdID, month, ok := forecastParams(w, r)
	if !ok {
		return
	}

	eval, err := s.svc.Evaluate(r.Context(), householdID, month)
	if err != nil {
		writeServiceError(w, r, "Insight evaluation failed", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"household_id": eval.HouseholdID,
		"month":        eval.Month.Key(),
		"insights":     buildInsights(eval.Insights),
	})
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		methodNotAllowed(w, "GET, POST")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	householdID, month, ok := forecastParams(w, r)
	if !ok {
		return
	}

	txs, err := s.svc.ListTransactions(r.Context(), householdID, month)
	if err != nil {
		writeServiceError(w, r, "Transaction listing failed", err)
		return
	}

	out := make([]transactionJSON, 0, len(txs))
	for _, tx := range txs {
		out = append(out, buildTransaction(tx))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"household_id": householdID,
		"month":        month.Key(),
		"transactions": out,
	})
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := parseTransaction(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	id, err := s.svc.CreateTransaction(r.Context(), tx)
	if err != nil {
		writeServiceError(w, r, "Transaction creation failed", err)
		return
	}

	tx.ID = id
	writeJSON(w, http.StatusCreated, buildTransaction(tx))
}

func (s *Server) handleRiskReduced(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost)
		return
	}

	var req riskReducedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.HouseholdID == "" {
		writeError(w, http.StatusBadRequest, "household_id is required")
		return
	}
	month, err := core.ParseMonth(req.Month)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return
	}
	if req.AmountCents <= 0 {
		writeError(w, http.StatusBadRequest, "amount_cents must be positive")
		return
	}

	s.svc.NotifyRiskReduced(r.Context(), req.HouseholdID, month, core.Money{Cents: req.AmountCents})
	w.WriteHeader(http.StatusAccepted)
}

// forecastParams extracts the household and month from query parameters,
// writing the error response itself when they are invalid.
func forecastParams(w http.ResponseWriter, r *http.Request) (string, core.Month, bool) {
	householdID := r.URL.Query().Get("household")
	if householdID == "" {
		writeError(w, http.StatusBadRequest, "household query parameter is required")
		return "", core.Month{}, false
	}
	month, err := parseMonthParam(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid month, expected YYYY-MM")
		return "", core.Month{}, false
	}
	return householdID, month, true
}

func writeServiceError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	logger := log.FromContext(r.Context())
	if isValidationError(err) {
		logger.WarnContext(r.Context(), msg, log.FieldError, err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	logger.ErrorContext(r.Context(), msg, log.FieldError, err.Error())
	writeError(w, http.StatusInternalServerError, "internal error")
}

func buildForecastResponse(eval *services.Evaluation) forecastResponse {
	resp := forecastResponse{
		HouseholdID: eval.HouseholdID,
		Month:       eval.Month.Key(),
		Projection: projectionJSON{
			ProjectedBalanceCents:           eval.Projection.ProjectedBalance.Cents,
			DailyRunRateCents:               eval.Projection.DailyRunRate.Cents,
			ProjectedRemainingVariableCents: eval.Projection.ProjectedRemainingVariable.Cents,
			DaysElapsed:                     eval.Projection.DaysElapsed,
			DaysInMonth:                     eval.Projection.DaysInMonth,
			DaysRemaining:                   eval.Projection.DaysRemaining,
		},
		Totals: totalsJSON{
			ProjectedBalanceCents: eval.Totals.ProjectedBalance.Cents,
			RealizedBalanceCents:  eval.Totals.RealizedBalance.Cents,
			PendingExpensesCents:  eval.Totals.PendingExpenses.Cents,
			PendingIncomeCents:    eval.Totals.PendingIncome.Cents,
		},
		History: historyJSON{
			VariableAvgCents: eval.History.VariableAvg.Cents,
			MonthsCount:      eval.History.MonthsCount,
		},
		Insights: buildInsights(eval.Insights),
	}
	if eval.Event != nil {
		resp.RiskEvent = &riskEventJSON{
			Kind:        string(eval.Event.Kind),
			AmountCents: eval.Event.Amount.Cents,
		}
	}
	return resp
}

func buildInsights(insights []insight.Insight) []insightJSON {
	out := make([]insightJSON, 0, len(insights))
	for _, in := range insights {
		out = append(out, insightJSON{
			ID:            in.ID,
			Type:          string(in.Type),
			Severity:      string(in.Severity),
			MessageKey:    in.MessageKey,
			Params:        in.Params,
			ActionHintKey: in.ActionHintKey,
		})
	}
	return out
}

func buildTransaction(tx core.Transaction) transactionJSON {
	out := transactionJSON{
		ID:          tx.ID,
		HouseholdID: tx.HouseholdID,
		Date:        tx.Date.Format("2006-01-02"),
		Amount:      formatCents(tx.Amount.Cents),
		Kind:        string(tx.Kind),
		Status:      string(tx.Status),
		ExpenseType: string(tx.ExpenseType),
		Description: tx.Description,
		Category:    tx.Category,
		Subcategory: tx.Subcategory,
	}
	if !tx.DueDate.IsEmpty() {
		out.DueDate = tx.DueDate.Format("2006-01-02")
	}
	return out
}

func parseTransaction(req transactionJSON) (core.Transaction, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return core.Transaction{}, core.ErrInvalidDate
	}

	var dueDate core.Date
	if req.DueDate != "" {
		dueDate, err = parseDate(req.DueDate)
		if err != nil {
			return core.Transaction{}, core.ErrInvalidDate
		}
	}

	cents, err := core.ParseDecimalToCents(req.Amount)
	if err != nil {
		return core.Transaction{}, err
	}

	tx := core.Transaction{
		HouseholdID: req.HouseholdID,
		Date:        date,
		DueDate:     dueDate,
		Amount:      core.Money{Cents: cents},
		Kind:        core.Kind(req.Kind),
		Status:      core.Status(req.Status),
		ExpenseType: core.ExpenseType(req.ExpenseType),
		Description: sanitizeInput(req.Description),
		Category:    sanitizeInput(req.Category),
		Subcategory: sanitizeInput(req.Subcategory),
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}
