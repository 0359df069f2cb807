package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"previsao/internal/core"
)

// parseMonthParam extracts the month from the "month" query parameter in
// YYYY-MM format, defaulting to the current month when absent.
func parseMonthParam(r *http.Request) (core.Month, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return core.MonthOf(time.Now().UTC()), nil
	}
	return core.ParseMonth(v)
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsedTime, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.Date{Time: parsedTime}, nil
}

// formatCents formats cents as a decimal string (e.g., "12.34").
func formatCents(cents int64) string {
	neg := cents < 0
	if neg {
		cents = -cents
	}
	s := strconv.FormatInt(cents/100, 10) + "." + fmt.Sprintf("%02d", cents%100)
	if neg {
		return "-" + s
	}
	return s
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func methodNotAllowed(w http.ResponseWriter, allow string) {
	w.Header().Set("Allow", allow)
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// isValidationError reports whether the error is caller input rather than a
// server fault.
func isValidationError(err error) bool {
	for _, sentinel := range []error{
		core.ErrInvalidInput,
		core.ErrInvalidDate,
		core.ErrInvalidAmount,
		core.ErrInvalidKind,
		core.ErrInvalidStatus,
		core.ErrInvalidExpense,
		core.ErrEmptyHousehold,
		core.ErrDescriptionSize,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
