package httputil

import (
	"log/slog"
	"net/http"
)

func InternalServerError(w http.ResponseWriter, msg string, err error) {
	slog.Error(msg, "error", err)
	WriteError(w, http.StatusInternalServerError, "INTERNAL", "Internal Server Error")
}

func BadRequest(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("bad request", "message", msg, "error", err)
	} else {
		slog.Warn("bad request", "message", msg)
	}
	WriteError(w, http.StatusBadRequest, "BAD_REQUEST", msg)
}

func NotFound(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("not found", "message", msg, "error", err)
	} else {
		slog.Warn("not found", "message", msg)
	}
	WriteError(w, http.StatusNotFound, "NOT_FOUND", msg)
}

func Unauthorized(w http.ResponseWriter) {
	WriteError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
}

func Conflict(w http.ResponseWriter, code, msg string, detail any) {
	slog.Warn("conflict", "code", code, "message", msg)
	WriteErrorDetail(w, http.StatusConflict, code, msg, detail)
}

func UnprocessableEntity(w http.ResponseWriter, msg string, err error) {
	if err != nil {
		slog.Warn("unprocessable", "message", msg, "error", err)
	} else {
		slog.Warn("unprocessable", "message", msg)
	}
	WriteError(w, http.StatusUnprocessableEntity, "UNPROCESSABLE", msg)
}
