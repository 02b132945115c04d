package middleware

import (
	"net/http"
	"strconv"

	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/handlers"
	"github.com/campusbot/UniBotAPI/internal/metrics"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

type requestResponseStruct struct {
	writer     http.ResponseWriter
	req        *http.Request
	badRequest failureStruct
	logger     *logger_i.Logger
}

type failureStruct struct {
	isBadRequest bool
	httpCode     int
	errorMessage string
}

var tokenManager *auth.TokenManager

func InitAuth(tm *auth.TokenManager) {
	tokenManager = tm
}

// Public wraps endpoints that need no token: trace + rate limit only.
func Public(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, anonymousChain)
}

// Authed requires a valid bearer token; claims end up on the context.
func Authed(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, authedChain)
}

// Admin additionally requires the admin role.
func Admin(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, adminChain)
}

// OptionalAuth attaches claims when a valid token is present but never
// rejects. Used by the anonymous query collector.
func OptionalAuth(next http.HandlerFunc) http.HandlerFunc {
	return wrap(next, optionalChain)
}

func wrap(next http.HandlerFunc, chain func(requestResponseStruct) requestResponseStruct) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &metrics.HttpStatusRecorder{ResponseWriter: w, Status: 200} //metrics
		re := chain(requestResponseStruct{req: r, writer: rec, logger: logger_i.NewLogger("middleware")})

		if re.badRequest.isBadRequest {
			handleBadRequest(re)
			return
		}
		next(rec, re.req)

		metrics.HttpRequestsTotal.WithLabelValues(r.URL.Path, strconv.Itoa(rec.Status)).Inc() //metrics
	}
}

func anonymousChain(re requestResponseStruct) requestResponseStruct {
	re = injectTrace(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return rateLimiter(re)
}

func authedChain(re requestResponseStruct) requestResponseStruct {
	re = anonymousChain(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return authenticate(re)
}

func adminChain(re requestResponseStruct) requestResponseStruct {
	re = authedChain(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return requireAdmin(re)
}

func optionalChain(re requestResponseStruct) requestResponseStruct {
	re = anonymousChain(re)
	if re.badRequest.isBadRequest {
		return re
	}
	return attachClaimsIfPresent(re)
}

func handleBadRequest(re requestResponseStruct) {
	re.logger.Warn("Bad request", "httpCode", re.badRequest.httpCode, "errorMessage", re.badRequest.errorMessage, "IP", re.req.RemoteAddr)
	handlers.WriteErrorResponse(re.writer, re.badRequest.httpCode, re.badRequest.errorMessage)
}
