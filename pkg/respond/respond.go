package respond

import (
	"encoding/json"
	"net/http"
)

func JSON(w http.ResponseWriter, r *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(data)
}

func Error(w http.ResponseWriter, r *http.Request, code int, message string) {
	JSON(w, r, code, map[string]string{"error": message})
}

// ErrorDetails writes {"error": message, "details": details}.
func ErrorDetails(w http.ResponseWriter, r *http.Request, code int, message string, details interface{}) {
	JSON(w, r, code, map[string]interface{}{"error": message, "details": details})
}

// Success writes {"success": true} plus an optional message.
func Success(w http.ResponseWriter, r *http.Request, message string) {
	body := map[string]interface{}{"success": true}
	if message != "" {
		body["message"] = message
	}
	JSON(w, r, http.StatusOK, body)
}
