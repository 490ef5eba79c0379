package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	pkgerrors "phonecheck/pkg/errors"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError centralizes domain error translation to HTTP responses so every
// handler emits the same JSON error envelope.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := string(pkgerrors.CodeInternal)
	message := "internal error"

	var svcErr pkgerrors.ServiceError
	if errors.As(err, &svcErr) {
		status = pkgerrors.ToHTTPStatus(svcErr.Code)
		code = string(svcErr.Code)
		if svcErr.Code != pkgerrors.CodeInternal {
			message = svcErr.Message
		}
	}

	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}
