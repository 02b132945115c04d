package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/campusbot/UniBotAPI/internal/adapter/utils"
	"github.com/campusbot/UniBotAPI/internal/auth"
	"github.com/campusbot/UniBotAPI/internal/config"
	"github.com/campusbot/UniBotAPI/internal/domain/commonModels"
	"github.com/campusbot/UniBotAPI/pkg/logger_i"
)

func injectTrace(re requestResponseStruct) requestResponseStruct {
	req := re.req
	if req == nil {
		//this is a bad request
		re.badRequest.httpCode = http.StatusBadRequest
		re.badRequest.errorMessage = "request is empty"
		re.badRequest.isBadRequest = true
		return re
	}
	trace := req.Header.Get("X-Trace-Id")
	if trace == "" {
		trace = utils.GetNewUUID()
	}
	re.logger = re.logger.With("traceId", trace)
	ctx := context.WithValue(req.Context(), config.TRACE_ID_KEY, trace)
	req.Header.Set(`X-Trace-Id`, trace)
	re.req = req.WithContext(ctx)

	return re
}

func authenticate(re requestResponseStruct) requestResponseStruct {
	re.logger.Debug("Authenticating request")

	claims, ok := validBearerClaims(re.req.Header.Get("Authorization"), re.logger)
	if !ok {
		re.badRequest.isBadRequest = true
		re.badRequest.errorMessage = "Invalid or expired token"
		re.badRequest.httpCode = http.StatusUnauthorized
		return re
	}

	re.req = re.req.WithContext(auth.WithClaims(re.req.Context(), claims))
	re.logger.Debug("Authorized", "user", claims.Subject, "role", claims.Role)
	return re
}

// attachClaimsIfPresent never rejects: a missing or bad token just
// leaves the request anonymous.
func attachClaimsIfPresent(re requestResponseStruct) requestResponseStruct {
	claims, ok := validBearerClaims(re.req.Header.Get("Authorization"), re.logger)
	if ok {
		re.req = re.req.WithContext(auth.WithClaims(re.req.Context(), claims))
	}
	return re
}

func requireAdmin(re requestResponseStruct) requestResponseStruct {
	claims, ok := auth.ClaimsFromContext(re.req.Context())
	if !ok || claims.Role != commonModels.RoleAdmin {
		re.badRequest.isBadRequest = true
		re.badRequest.errorMessage = "Admin access required"
		re.badRequest.httpCode = http.StatusForbidden
	}
	return re
}

func validBearerClaims(authHeader string, log *logger_i.Logger) (*auth.Claims, bool) {
	if authHeader == "" {
		return nil, false
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		log.Debug("No Bearer prefix in authorization header")
		return nil, false
	}
	claims, err := tokenManager.Validate(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		log.Debug("Token validation failed", "error", err)
		return nil, false
	}
	return claims, true
}

func rateLimiter(re requestResponseStruct) requestResponseStruct {
	ip, _, err := net.SplitHostPort(re.req.RemoteAddr)
	if err != nil {
		ip = re.req.RemoteAddr
	}

	if !limiterInstance.GetLimiter(ip).Allow() {
		re.logger.Error("Too many requests", "Rate Limiter exceeded", ip)
		re.badRequest = failureStruct{
			isBadRequest: true,
			httpCode:     http.StatusTooManyRequests,
			errorMessage: "Rate limit exceeded",
		}
		return re
	}
	return re
}
