package serializer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrorResponse is the single error envelope for every failing response.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is the body of mutations that return no entity.
type MessageResponse struct {
	Message string `json:"message"`
}

func Msg(msg string) MessageResponse {
	return MessageResponse{Message: msg}
}

func ErrMsg(msg string) ErrorResponse {
	return ErrorResponse{Error: msg}
}

// Err renders an error for the response body. Binding failures from the
// validator are flattened into a readable field list instead of the
// struct-path dump validator produces by default.
func Err(err error) ErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
		}
		return ErrorResponse{Error: "invalid request body: " + strings.Join(fields, ", ")}
	}
	return ErrorResponse{Error: err.Error()}
}
