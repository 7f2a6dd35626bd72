package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorResponse 是所有非流式错误响应的统一载荷。
type ErrorResponse struct {
	Error string `json:"error"`
}

// RespondJSON 以 JSON 编码 payload 并写入响应。
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[utils] failed to encode response payload: %v", err)
	}
}

// RespondError 发送统一结构的错误响应。
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Error: message})
}
