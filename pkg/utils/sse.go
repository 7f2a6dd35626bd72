package utils

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
)

// SetupSSEHeaders 设置Server-Sent Events响应头
func SetupSSEHeaders(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
}

// SendSSEEvent 发送一条带事件名的wire记录：`event: name\ndata: json\n\n`。
// 序列化或写入失败只记录日志，流继续。
func SendSSEEvent(w http.ResponseWriter, flusher http.Flusher, event string, data any) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("[sse] failed to marshal %s payload: %v", event, err)
		return
	}

	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, jsonData); err != nil {
		log.Printf("[sse] failed to write %s record: %v", event, err)
		return
	}
	flusher.Flush()
}

// SendSSEComment 发送一条注释行（客户端按协议忽略）。
func SendSSEComment(w http.ResponseWriter, flusher http.Flusher, text string) {
	if _, err := fmt.Fprintf(w, ": %s\n\n", text); err != nil {
		log.Printf("[sse] failed to write comment: %v", err)
		return
	}
	flusher.Flush()
}
