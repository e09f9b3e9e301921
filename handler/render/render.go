package render

import (
	"encoding/json"
	"net/http"

	"lendingpool/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render json")
	}
}

// Error write ledger error with its code
func Error(w http.ResponseWriter, err error) {
	status, code, msg := codes.Get(err)
	write(w, status, code, msg)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	write(w, http.StatusBadRequest, codes.InvalidArguments, err.Error())
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	write(w, http.StatusNotFound, codes.InvalidArguments, err.Error())
}

func write(w http.ResponseWriter, status, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(H{"code": code, "msg": msg}); err != nil {
		logrus.WithError(err).Errorln("render error")
	}
}

// Error401 unauthorized
func Error401(w http.ResponseWriter, err error) {
	write(w, http.StatusUnauthorized, codes.InvalidArguments, err.Error())
}
