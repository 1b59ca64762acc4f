package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/cristianoliveira/booknet/internal/domain"
	"github.com/go-playground/validator/v10"
)

// validate is the package-level validator instance.
var validate = validator.New()

// ValidateFeedback checks a feedback payload before it is sent. Violations
// come back as an *Error with one entry per failed field, so callers render
// them the same way as server-side validation failures.
func ValidateFeedback(req domain.FeedbackRequest) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	ve, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s failed '%s'", strings.ToLower(fe.Field()), fe.Tag()))
	}
	return &Error{
		StatusCode:       http.StatusBadRequest,
		Message:          "invalid feedback",
		ValidationErrors: msgs,
	}
}

// SaveFeedback posts feedback for a returned book and returns its id.
func (c *Client) SaveFeedback(ctx context.Context, req domain.FeedbackRequest) (int, error) {
	if err := ValidateFeedback(req); err != nil {
		return 0, err
	}
	var id int
	if err := c.do(ctx, http.MethodPost, "feedbacks", nil, req, &id); err != nil {
		return 0, err
	}
	return id, nil
}
