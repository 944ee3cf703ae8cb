package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"farmmarket/apperr"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeAppError maps a classified error to its status code. Dependency
// failures are logged with their cause before surfacing as a 500.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) {
		logrus.WithError(err).Error("unclassified error")
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	switch appErr.Kind {
	case apperr.KindValidation:
		writeError(w, http.StatusBadRequest, appErr.Message)
	case apperr.KindConflict:
		writeError(w, http.StatusConflict, appErr.Message)
	case apperr.KindAuth:
		writeError(w, http.StatusUnauthorized, appErr.Message)
	case apperr.KindNotFound:
		writeError(w, http.StatusNotFound, appErr.Message)
	case apperr.KindDependency:
		logrus.WithError(appErr.Err).Error(appErr.Message)
		writeError(w, http.StatusInternalServerError, appErr.Message)
	default:
		logrus.WithError(err).Error("unknown error kind")
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}
