package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/futsal-club/internal/domain/match"
	"github.com/riskibarqy/futsal-club/internal/domain/player"
	"github.com/riskibarqy/futsal-club/internal/domain/ranking"
	"github.com/riskibarqy/futsal-club/internal/domain/rating"
	"github.com/riskibarqy/futsal-club/internal/domain/skill"
	"github.com/riskibarqy/futsal-club/internal/domain/team"
	"github.com/riskibarqy/futsal-club/internal/platform/resilience"
	"github.com/riskibarqy/futsal-club/internal/platform/tracing"
	"github.com/riskibarqy/futsal-club/internal/usecase"
	"go.opentelemetry.io/otel/trace"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "futsal-club"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code    int               `json:"code"`
	Message string            `json:"message"`
	Status  string            `json:"status"`
	Errors  []googleErrorItem `json:"errors,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

type errorRule struct {
	targets []error
	mapped  mappedError
}

var (
	invalidArgument = mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"}
	invalidClubData = mappedError{HTTPStatus: http.StatusBadRequest, Reason: "invalidClubData", Status: "INVALID_ARGUMENT"}
	internalFailure = mappedError{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}
)

// errorRules is checked in order; the first rule with a matching target wins.
var errorRules = []errorRule{
	{targets: []error{usecase.ErrInvalidInput}, mapped: invalidArgument},
	{targets: []error{usecase.ErrNotFound}, mapped: mappedError{HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"}},
	{targets: []error{usecase.ErrUnauthorized}, mapped: mappedError{HTTPStatus: http.StatusUnauthorized, Reason: "unauthorized", Status: "UNAUTHENTICATED"}},
	{targets: []error{usecase.ErrConflict}, mapped: mappedError{HTTPStatus: http.StatusConflict, Reason: "conflict", Status: "FAILED_PRECONDITION"}},
	{
		targets: []error{usecase.ErrDependencyUnavailable, resilience.ErrCircuitOpen},
		mapped:  mappedError{HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
	},
	{
		targets: []error{
			player.ErrUnknownRole,
			player.ErrEmptyPatch,
			player.ErrGuestNotRated,
			skill.ErrUnknownSkill,
			rating.ErrEmptyRating,
			rating.ErrSkillOutOfRange,
			team.ErrInvalidTeamCount,
			match.ErrUnknownEventType,
			match.ErrAssistOnDefense,
			match.ErrTeamNotInMatch,
			match.ErrSelfAssist,
			match.ErrUnknownStatus,
			ranking.ErrUnknownCategory,
		},
		mapped: invalidClubData,
	},
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload any) {
	ctx, span := startSpan(ctx, "httpapi.writeJSON")
	defer span.End()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	ctx, span := startSpan(ctx, "httpapi.writeSuccess")
	defer span.End()

	writeJSON(ctx, w, status, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Data:       data,
	})
}

// writeError maps err onto the envelope. Unmapped errors are reported as a
// bare internal error so storage details never reach the client.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	ctx, span := startSpan(ctx, "httpapi.writeError")
	defer span.End()

	mapped := mapError(ctx, err)
	if mapped == internalFailure {
		tracing.Fail(trace.SpanFromContext(ctx), err)
		writeInternalError(ctx, w)
		return
	}
	writeErrorBody(ctx, w, mapped, err.Error())
}

func writeInternalError(ctx context.Context, w http.ResponseWriter) {
	writeErrorBody(ctx, w, internalFailure, "internal server error")
}

func writeErrorBody(ctx context.Context, w http.ResponseWriter, mapped mappedError, msg string) {
	writeJSON(ctx, w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:    mapped.HTTPStatus,
			Message: msg,
			Status:  mapped.Status,
			Errors: []googleErrorItem{{
				Domain:  errorDomain,
				Reason:  mapped.Reason,
				Message: msg,
			}},
		},
	})
}

func mapError(ctx context.Context, err error) mappedError {
	_, span := startSpan(ctx, "httpapi.mapError")
	defer span.End()

	for _, rule := range errorRules {
		for _, target := range rule.targets {
			if errors.Is(err, target) {
				return rule.mapped
			}
		}
	}
	return internalFailure
}
