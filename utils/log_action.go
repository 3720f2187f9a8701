package utils

import (
	"context"

	"github.com/sirupsen/logrus"
)

// ContextKey is a custom type for context keys attached to a request.
type ContextKey string

// Context keys carried on a request context for structured logging.
const (
	ContextKeyCallerID  ContextKey = "callerID"
	ContextKeyRequestID ContextKey = "requestID"
)

// ActionLogParams holds parameters for logging one API or loader action.
type ActionLogParams struct {
	Logger    *logrus.Logger
	Ctx       context.Context
	Action    string
	Status    string
	Details   string
	ErrorMsg  string
	UserAgent string
	IP        string
}

// LogUserAction logs one action with contextual caller/request ids and
// status. Logs at Info for "pending"/"success" (or any other status) and
// at Error for "fail".
func LogUserAction(p ActionLogParams) {
	callerID := p.Ctx.Value(ContextKeyCallerID)
	requestID := p.Ctx.Value(ContextKeyRequestID)

	fields := logrus.Fields{
		"caller_id":  callerID,
		"action":     p.Action,
		"status":     p.Status,
		"details":    p.Details,
		"user_agent": p.UserAgent,
		"ip":         p.IP,
		"request_id": requestID,
	}

	if p.ErrorMsg != "" {
		fields["error"] = p.ErrorMsg
	}

	entry := p.Logger.WithFields(fields)

	switch p.Status {
	case "fail":
		entry.Error("action failed")
	default:
		entry.Info("action " + p.Status)
	}
}
