package utils

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/orris-inc/helpdesk/internal/shared/config"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
)

const (
	AccessTokenCookie = "access_token"
	CSRFTokenCookie   = "csrf_token"
	CSRFTokenHeader   = "X-CSRF-Token"
)

// SetAccessTokenCookie stores the session JWT as an HttpOnly cookie.
func SetAccessTokenCookie(c *gin.Context, cookieConfig config.CookieConfig, accessToken string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		AccessTokenCookie,
		accessToken,
		maxAge,
		cookiePath(cookieConfig),
		cookieConfig.Domain,
		cookieConfig.Secure,
		true, // HttpOnly
	)
}

// SetCSRFCookie stores the double-submit token. It is readable from scripts
// so the client can echo it in the X-CSRF-Token header.
func SetCSRFCookie(c *gin.Context, cookieConfig config.CookieConfig, token string, maxAge int) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	c.SetCookie(
		CSRFTokenCookie,
		token,
		maxAge,
		cookiePath(cookieConfig),
		cookieConfig.Domain,
		cookieConfig.Secure,
		false,
	)
}

// ClearAuthCookies expires the session and CSRF cookies.
func ClearAuthCookies(c *gin.Context, cookieConfig config.CookieConfig) {
	c.SetSameSite(parseSameSite(cookieConfig.SameSite))
	for _, name := range []string{AccessTokenCookie, CSRFTokenCookie} {
		c.SetCookie(
			name,
			"",
			-1,
			cookiePath(cookieConfig),
			cookieConfig.Domain,
			cookieConfig.Secure,
			name == AccessTokenCookie,
		)
	}
}

// GetAccessToken returns the token from the session cookie, falling back to
// an "Authorization: Bearer" header.
func GetAccessToken(c *gin.Context) string {
	if token, err := c.Cookie(AccessTokenCookie); err == nil && token != "" {
		return token
	}

	header := c.GetHeader(constants.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func cookiePath(cookieConfig config.CookieConfig) string {
	if cookieConfig.Path == "" {
		return "/"
	}
	return cookieConfig.Path
}

// parseSameSite converts string to http.SameSite
func parseSameSite(sameSite string) http.SameSite {
	switch sameSite {
	case "Strict":
		return http.SameSiteStrictMode
	case "None":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
