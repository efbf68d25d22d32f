package api

import (
  "encoding/json"
  "net/http"
)

type ResponseHandler struct {
  Writer http.ResponseWriter
}

func (h *ResponseHandler) Json(data interface{}) {
  h.Writer.Header().Set("Content-Type", "application/json")
  body, _ := json.Marshal(map[string]interface{}{
    "success": true,
    "data":    data,
  })
  h.Writer.Write(body)
}

func (h *ResponseHandler) Pagenate(data interface{}, total int64, current int, pageSize int) {
  h.Writer.Header().Set("Content-Type", "application/json")
  body, _ := json.Marshal(map[string]interface{}{
    "success":   true,
    "data":      data,
    "total":     total,
    "current":   current,
    "page_size": pageSize,
  })
  h.Writer.Write(body)
}

func (h *ResponseHandler) Error(status int, code int, message string) {
  h.Writer.Header().Set("Content-Type", "application/json")
  h.Writer.WriteHeader(status)
  body, _ := json.Marshal(map[string]interface{}{
    "success": false,
    "code":    code,
    "message": message,
  })
  h.Writer.Write(body)
}
