package middleware

import (
	"strings"
	"time"

	"github.com/dlclark/regexp2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ConfigCORS allows the given origins. "*" allows any origin; an entry
// containing "*" elsewhere is matched as a wildcard pattern, e.g.
// "https://*.example.com".
func ConfigCORS(allowedDomains []string) gin.HandlerFunc {
	conf := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Retry-After"},
		AllowWebSockets:  true,
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}

	var exact []string
	var patterns []*regexp2.Regexp
	for _, domain := range allowedDomains {
		switch {
		case domain == "*":
			conf.AllowAllOrigins = true
		case strings.Contains(domain, "*"):
			re, err := compileOriginPattern(domain)
			if err != nil {
				zap.L().Warn("ignoring invalid CORS origin pattern", zap.String("pattern", domain), zap.Error(err))
				continue
			}
			patterns = append(patterns, re)
		default:
			exact = append(exact, domain)
		}
	}

	if !conf.AllowAllOrigins {
		conf.AllowOriginFunc = func(origin string) bool {
			return originAllowed(origin, exact, patterns)
		}
	}

	return cors.New(conf)
}

func compileOriginPattern(pattern string) (*regexp2.Regexp, error) {
	parts := strings.Split(pattern, "*")
	for i, part := range parts {
		parts[i] = regexp2.Escape(part)
	}
	re, err := regexp2.Compile(`^`+strings.Join(parts, `[^/]+`)+`$`, regexp2.IgnoreCase)
	if err != nil {
		return nil, err
	}
	re.MatchTimeout = 100 * time.Millisecond

	return re, nil
}

func originAllowed(origin string, exact []string, patterns []*regexp2.Regexp) bool {
	for _, domain := range exact {
		if strings.EqualFold(domain, origin) {
			return true
		}
	}
	for _, re := range patterns {
		if ok, err := re.MatchString(origin); err == nil && ok {
			return true
		}
	}

	return false
}
