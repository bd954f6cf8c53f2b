package api

import (
	"encoding/json"
	stderrors "errors"
	"log"
	"net/http"

	"github.com/promptshelf/promptshelf/internal/errors"
)

// Response is the envelope every endpoint returns.
type Response struct {
	Code   string `json:"code"`
	Msg    string `json:"msg"`
	Result any    `json:"result"`
}

const (
	codeSuccess      = "success"
	codeBadRequest   = "bad_request"
	codeUnauthorized = "unauthorized"
	codeNotFound     = "not_found"
	codeConflict     = "conflict"
	codeInternal     = "internal_error"
)

func respondOK(w http.ResponseWriter, msg string, result any) {
	writeJSON(w, http.StatusOK, Response{Code: codeSuccess, Msg: msg, Result: result})
}

// respondError maps structured errors onto the envelope. Unknown error
// types become 500s with a generic message so internals never leak.
func respondError(w http.ResponseWriter, err error) {
	var shelfErr *errors.ShelfError
	if !stderrors.As(err, &shelfErr) {
		log.Printf("api: unexpected error: %v", err)
		writeJSON(w, http.StatusInternalServerError, Response{Code: codeInternal, Msg: "internal error"})
		return
	}

	code := codeInternal
	switch shelfErr.Status {
	case http.StatusBadRequest:
		code = codeBadRequest
	case http.StatusUnauthorized:
		code = codeUnauthorized
	case http.StatusNotFound:
		code = codeNotFound
	case http.StatusConflict:
		code = codeConflict
	}
	if shelfErr.Status >= 500 {
		log.Printf("api: %v", shelfErr)
	}
	writeJSON(w, shelfErr.Status, Response{Code: code, Msg: shelfErr.Message})
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("api: encode response: %v", err)
	}
}
