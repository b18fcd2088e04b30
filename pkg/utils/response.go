package utils

import (
	"encoding/json"
	"net/http"
)

// Failure 是所有失败响应的统一结构。
type Failure struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondError 发送 {success:false, message, error} 错误响应
func RespondError(w http.ResponseWriter, status int, message string, err error) {
	body := Failure{Success: false, Message: message}
	if err != nil {
		body.Error = err.Error()
	}
	RespondJSON(w, status, body)
}
