package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
)

const (
	// DefaultTokeninfoURL is the Google OAuth2 token introspection endpoint.
	DefaultTokeninfoURL = "https://oauth2.googleapis.com/tokeninfo"

	// DefaultCacheTTL bounds how long a successful validation is reused
	// without revalidating against the introspection endpoint.
	DefaultCacheTTL = 600 * time.Second

	// MinCacheTTL is the floor applied to a configured cache TTL.
	MinCacheTTL = 30 * time.Second

	defaultValidateTimeout = 5 * time.Second
)

// Validation failure reasons carried in Result.Error.
const (
	ReasonMissingToken     = "missing access token"
	ReasonInvalidToken     = "invalid access token"
	ReasonAudienceMismatch = "token audience mismatch"
	ReasonTokenExpired     = "access token expired"
)

// Result is the outcome of validating a single credential. Exactly one
// of OK with non-nil Claims, or a non-empty Error holds.
type Result struct {
	OK     bool
	Claims map[string]interface{}
	Error  string
}

// Validator authenticates bearer credentials against a remote tokeninfo
// endpoint and caches successful validations. A cache hit performs no
// network call; a miss performs exactly one, with concurrent misses on
// the same credential collapsed into a single outbound request.
type Validator struct {
	clientID   string
	endpoint   string
	cacheTTL   time.Duration
	httpClient *http.Client
	cache      *ExpiryCache[string, map[string]interface{}]
	group      singleflight.Group
	now        func() time.Time
}

// ValidatorOption configures a Validator.
type ValidatorOption func(v *Validator)

// WithEndpoint overrides the introspection endpoint URL.
func WithEndpoint(URL string) ValidatorOption {
	return func(v *Validator) {
		v.endpoint = URL
	}
}

// WithCacheTTL sets the maximum reuse window for a successful
// validation; values below MinCacheTTL are raised to the floor.
func WithCacheTTL(ttl time.Duration) ValidatorOption {
	return func(v *Validator) {
		v.cacheTTL = ttl
	}
}

// WithHTTPClient overrides the HTTP client used for introspection calls.
func WithHTTPClient(client *http.Client) ValidatorOption {
	return func(v *Validator) {
		v.httpClient = client
	}
}

// NewValidator creates a validator for the supplied OAuth client id; the
// id is matched against the introspected credential audience.
func NewValidator(clientID string, options ...ValidatorOption) (*Validator, error) {
	if clientID == "" {
		return nil, fmt.Errorf("oauth client id was empty")
	}
	ret := &Validator{
		clientID:   clientID,
		endpoint:   DefaultTokeninfoURL,
		cacheTTL:   DefaultCacheTTL,
		httpClient: &http.Client{Timeout: defaultValidateTimeout},
		cache:      NewExpiryCache[string, map[string]interface{}](),
		now:        time.Now,
	}
	for _, option := range options {
		option(ret)
	}
	if ret.cacheTTL < MinCacheTTL {
		ret.cacheTTL = MinCacheTTL
	}
	return ret, nil
}

// Validate authenticates accessToken, serving repeated calls within the
// cached TTL from memory. The cache never extends a credential's usable
// life past the expiry declared at validation time.
func (v *Validator) Validate(ctx context.Context, accessToken string) *Result {
	if accessToken == "" {
		return &Result{Error: ReasonMissingToken}
	}
	if claims, ok := v.cache.Lookup(accessToken); ok {
		return &Result{OK: true, Claims: claims}
	}
	result, _, _ := v.group.Do(accessToken, func() (interface{}, error) {
		return v.introspect(ctx, accessToken), nil
	})
	return result.(*Result)
}

func (v *Validator) introspect(ctx context.Context, accessToken string) *Result {
	URL := v.endpoint + "?access_token=" + url.QueryEscape(accessToken)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, URL, nil)
	if err != nil {
		return &Result{Error: fmt.Sprintf("token validation failed: %v", err)}
	}
	response, err := v.httpClient.Do(request)
	if err != nil {
		return &Result{Error: fmt.Sprintf("token validation failed: %v", err)}
	}
	defer response.Body.Close()
	if response.StatusCode != http.StatusOK {
		return &Result{Error: ReasonInvalidToken}
	}
	var claims map[string]interface{}
	if err := json.NewDecoder(response.Body).Decode(&claims); err != nil {
		return &Result{Error: fmt.Sprintf("token validation failed: %v", err)}
	}
	audience, _ := claims["aud"].(string)
	if audience == "" {
		audience, _ = claims["issued_to"].(string)
	}
	if audience != v.clientID {
		return &Result{Error: ReasonAudienceMismatch}
	}
	now := v.now()
	expiry := extractExpiry(claims, now)
	if !expiry.After(now) {
		return &Result{Error: ReasonTokenExpired}
	}
	ttl := expiry.Sub(now)
	if ttl > v.cacheTTL {
		ttl = v.cacheTTL
	}
	v.cache.Put(accessToken, claims, now.Add(ttl))
	return &Result{OK: true, Claims: claims}
}

// extractExpiry derives the absolute credential expiry: an exp claim
// (epoch seconds) wins, then now+expires_in; anything unparseable counts
// as already expired.
func extractExpiry(claims map[string]interface{}, now time.Time) time.Time {
	if value, ok := claims["exp"]; ok {
		seconds, ok := asSeconds(value)
		if !ok {
			return now
		}
		return time.Unix(int64(seconds), 0)
	}
	if value, ok := claims["expires_in"]; ok {
		if seconds, ok := asSeconds(value); ok {
			return now.Add(time.Duration(seconds * float64(time.Second)))
		}
	}
	return now
}

// asSeconds converts a numeric claim; tokeninfo serves numbers as JSON
// strings.
func asSeconds(value interface{}) (float64, bool) {
	switch actual := value.(type) {
	case float64:
		return actual, true
	case int:
		return float64(actual), true
	case int64:
		return float64(actual), true
	case json.Number:
		parsed, err := actual.Float64()
		return parsed, err == nil
	case string:
		parsed, err := strconv.ParseFloat(actual, 64)
		return parsed, err == nil
	}
	return 0, false
}
