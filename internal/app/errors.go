package app

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/metinatakli/stripe-checkout-gateway/api"
	"github.com/metinatakli/stripe-checkout-gateway/internal/domain"
)

const (
	ErrInternalServer      = "The server encountered a problem and could not process your request"
	ErrMsgMissingAPIKey    = "Payment gateway API key is missing. Please configure the gateway settings."
	ErrMsgSessionFailed    = "Checkout session creation failed."
	ErrMsgInvalidOrder     = "This order cannot be paid. Please review your cart and try again."
	ErrMsgOrderNotFound    = "The requested order could not be found"
	ErrMsgMethodNotAllowed = "The payment method is not available"
)

func (app *Application) logError(r *http.Request, err error) {
	var (
		method = r.Method
		uri    = r.URL.RequestURI()
	)

	app.logger.Error(err.Error(), "method", method, "uri", uri, "request_id", middleware.GetReqID(r.Context()))
}

// The errorResponse() method is a generic helper for sending JSON-formatted error
// messages to the client with a given status code.
func (app *Application) errorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.ErrorResponse{
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

func (app *Application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	app.errorResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
}

func (app *Application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	message := "The requested resource not found"
	app.errorResponse(w, r, http.StatusNotFound, message)
}

func (app *Application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	message := fmt.Sprintf("The %s method is not supported for this resource", r.Method)
	app.errorResponse(w, r, http.StatusMethodNotAllowed, message)
}

func (app *Application) badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusBadRequest, err.Error())
}

// invalidParamResponse handles path parameters the generated router could not bind.
func (app *Application) invalidParamResponse(w http.ResponseWriter, r *http.Request, err error) {
	var paramErr *api.InvalidParamFormatError
	if errors.As(err, &paramErr) {
		err = fmt.Errorf("invalid path parameter %s", paramErr.ParamName)
	}

	if isPaymentRequest(r) {
		app.paymentFailedResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	app.badRequestResponse(w, r, err)
}

// requestValidationResponse reports a request rejected by the OpenAPI validator
// without leaking the schema details.
func (app *Application) requestValidationResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.contextGetLogger(r).Debug("request failed validation", "error", err)

	message := "The request is invalid"

	var reqErr *openapi3filter.RequestError
	if errors.As(err, &reqErr) {
		switch {
		case reqErr.Parameter != nil:
			message = fmt.Sprintf("invalid %s parameter %s", reqErr.Parameter.In, reqErr.Parameter.Name)
		case reqErr.RequestBody != nil:
			message = "invalid request body"
		}
	}

	if isPaymentRequest(r) {
		app.paymentFailedResponse(w, r, http.StatusBadRequest, message)
		return
	}

	app.errorResponse(w, r, http.StatusBadRequest, message)
}

// paymentFailedResponse writes the failure result of a payment attempt. message
// is shown to the shopper as is.
func (app *Application) paymentFailedResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	resp := api.PaymentFailureResponse{
		Result:    api.Failure,
		Message:   message,
		RequestId: middleware.GetReqID(r.Context()),
		Timestamp: time.Now(),
	}

	err := app.writeJSON(w, status, resp, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(500)
	}
}

// paymentErrorResponse maps a failed payment attempt to a status code and a
// shopper notice. The detailed error is only logged.
func (app *Application) paymentErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	logger := app.contextGetLogger(r)

	switch {
	case errors.Is(err, domain.ErrGatewayDisabled):
		app.paymentFailedResponse(w, r, http.StatusBadRequest, ErrMsgMethodNotAllowed)
		return
	case errors.Is(err, domain.ErrRecordNotFound):
		app.paymentFailedResponse(w, r, http.StatusNotFound, ErrMsgOrderNotFound)
		return
	}

	switch domain.Kind(err) {
	case domain.KindMissingAPIKey:
		logger.Error("payment gateway is not configured", "error", err)
		app.paymentFailedResponse(w, r, http.StatusServiceUnavailable, ErrMsgMissingAPIKey)
	case domain.KindInvalidOrder:
		logger.Warn("order rejected", "error", err)
		app.paymentFailedResponse(w, r, http.StatusUnprocessableEntity, ErrMsgInvalidOrder)
	case domain.KindProviderError:
		logProviderError(logger, err)
		app.paymentFailedResponse(w, r, http.StatusBadGateway, ErrMsgSessionFailed)
	default:
		app.logError(r, err)
		app.paymentFailedResponse(w, r, http.StatusInternalServerError, ErrInternalServer)
	}
}
