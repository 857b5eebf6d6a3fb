package render

import (
	"encoding/json"
	"net/http"

	"llamalend/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render.JSON")
	}
}

// Error write error, status and code follow the error kind
func Error(w http.ResponseWriter, err error) {
	status, code := codes.Of(err)
	writeError(w, status, errorResponse{Code: code, Msg: err.Error()})
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	status, code := codes.Of(err)
	if status == http.StatusInternalServerError {
		status, code = http.StatusBadRequest, codes.InvalidArguments
	}

	writeError(w, status, errorResponse{Code: code, Msg: err.Error()})
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	writeError(w, http.StatusNotFound, errorResponse{Code: codes.NotFound, Msg: err.Error()})
}

func writeError(w http.ResponseWriter, status int, resp errorResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logrus.WithError(err).Errorln("render.Error")
	}
}
